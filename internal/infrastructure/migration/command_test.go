package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    Command
		wantErr error
	}{
		{name: "up", args: []string{"up"}, want: Command{Action: ActionUp}},
		{name: "down", args: []string{"down"}, want: Command{Action: ActionDown}},
		{name: "version", args: []string{"version"}, want: Command{Action: ActionVersion}},
		{name: "steps forward", args: []string{"steps", "2"}, want: Command{Action: ActionSteps, Arg: 2}},
		{name: "steps back", args: []string{"steps", "-1"}, want: Command{Action: ActionSteps, Arg: -1}},
		{name: "force", args: []string{"force", "1"}, want: Command{Action: ActionForce, Arg: 1}},
		{name: "force nil version", args: []string{"force", "-1"}, want: Command{Action: ActionForce, Arg: -1}},
		{name: "empty", args: nil, wantErr: ErrMissingArgument},
		{name: "steps without n", args: []string{"steps"}, wantErr: ErrMissingArgument},
		{name: "steps zero", args: []string{"steps", "0"}, wantErr: ErrInvalidArgument},
		{name: "steps not a number", args: []string{"steps", "x"}, wantErr: ErrInvalidArgument},
		{name: "force below nil version", args: []string{"force", "-2"}, wantErr: ErrInvalidArgument},
		{name: "unknown", args: []string{"drop"}, wantErr: ErrUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommand(tt.args)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMigrator_RunUnknownAction(t *testing.T) {
	m := &Migrator{}
	err := m.Run(Command{Action: "drop"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
}
