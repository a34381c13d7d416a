package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyCheckPassword(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"minimum length", "abcdef", false},
		{"typical password", "secret-pass", false},
		{"too short", "abcde", true},
		{"empty", "", true},
		{"maximum length", strings.Repeat("a", 100), false},
		{"too long", strings.Repeat("a", 101), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.CheckPassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
