package config

// JwtConfig holds the settings for verifying tokens on the admin API.
// Token issuance belongs to the identity platform; the admin server only
// verifies (use cmd/tokengen to mint a development token).
type JwtConfig struct {
	Secret string `env:"ADMIN_JWT_SECRET" env-default:"admin-dev-secret-change-in-production"`
}
