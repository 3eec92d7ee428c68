package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeep(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		names []string
		want  []string
	}{
		{
			name:  "separate value",
			args:  []string{"-a", "http://localhost:8080", "-x", "1"},
			names: []string{"-a"},
			want:  []string{"-a", "http://localhost:8080"},
		},
		{
			name:  "equals form",
			args:  []string{"--config=wallet.json", "-d", "wallet.db"},
			names: []string{"--config"},
			want:  []string{"--config=wallet.json"},
		},
		{
			name:  "unknown flags dropped",
			args:  []string{"-z", "val", "-y=2"},
			names: []string{"-a"},
			want:  []string{},
		},
		{
			name:  "flag followed by another flag keeps no value",
			args:  []string{"-a", "-d", "wallet.db"},
			names: []string{"-a"},
			want:  []string{"-a"},
		},
		{
			name:  "empty args",
			args:  nil,
			names: []string{"-a"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Keep(tt.args, tt.names))
		})
	}
}

func TestConfigFilePath(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"wallet", "-c", "conf.json", "-a", "http://x"}
	assert.Equal(t, "conf.json", ConfigFilePath())

	os.Args = []string{"wallet", "-config=other.json"}
	assert.Equal(t, "other.json", ConfigFilePath())

	os.Args = []string{"wallet"}
	assert.Equal(t, "", ConfigFilePath())
}
