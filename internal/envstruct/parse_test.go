package envstruct

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPopulate(t *testing.T) {
	type config struct {
		Addr        string        `env:"TEST_ADDR" envDefault:"localhost:4000"`
		SQLiteURL   string        `env:"TEST_SQLITE_URL"`
		MaxAttempts int           `env:"TEST_MAX_ATTEMPTS" envDefault:"3"`
		Timeout     time.Duration `env:"TEST_TIMEOUT" envDefault:"5s"`
		Debug       bool          `env:"TEST_DEBUG" envDefault:"false"`
	}

	tests := []struct {
		name    string
		env     map[string]string
		want    config
		wantErr bool
	}{
		{
			name: "all set",
			env: map[string]string{
				"TEST_ADDR":         "localhost:0",
				"TEST_SQLITE_URL":   ":memory:",
				"TEST_MAX_ATTEMPTS": "5",
				"TEST_TIMEOUT":      "1m",
				"TEST_DEBUG":        "true",
			},
			want: config{
				Addr:        "localhost:0",
				SQLiteURL:   ":memory:",
				MaxAttempts: 5,
				Timeout:     time.Minute,
				Debug:       true,
			},
		},
		{
			name: "defaults apply",
			env:  map[string]string{"TEST_SQLITE_URL": "./test.sqlite"},
			want: config{
				Addr:        "localhost:4000",
				SQLiteURL:   "./test.sqlite",
				MaxAttempts: 3,
				Timeout:     5 * time.Second,
				Debug:       false,
			},
		},
		{
			name:    "missing required variable",
			env:     map[string]string{},
			wantErr: true,
		},
		{
			name: "malformed integer",
			env: map[string]string{
				"TEST_SQLITE_URL":   ":memory:",
				"TEST_MAX_ATTEMPTS": "many",
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lookupEnv := func(key string) (string, bool) {
				val, ok := tt.env[key]
				return val, ok
			}

			var got config
			err := Populate(&got, lookupEnv)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPopulate_invalidTarget(t *testing.T) {
	lookupEnv := func(string) (string, bool) { return "", false }

	err := Populate(struct{}{}, lookupEnv)
	require.ErrorIs(t, err, ErrInvalidValue)

	var notStruct int
	err = Populate(&notStruct, lookupEnv)
	require.ErrorIs(t, err, ErrInvalidValue)
}
