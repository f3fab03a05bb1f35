package migration

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrUnknownCommand  = errors.New("migration: unknown command")
	ErrMissingArgument = errors.New("migration: missing argument")
	ErrInvalidArgument = errors.New("migration: invalid argument")
)

// Action is a migrate CLI verb
type Action string

const (
	ActionUp      Action = "up"
	ActionDown    Action = "down"
	ActionVersion Action = "version"
	ActionSteps   Action = "steps"
	ActionForce   Action = "force"
)

// Command is a parsed CLI invocation. Arg carries N for steps and V for force.
type Command struct {
	Action Action
	Arg    int
}

// ParseCommand parses positional CLI arguments such as ["steps", "-1"]
func ParseCommand(args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, fmt.Errorf("%w: command", ErrMissingArgument)
	}

	action := Action(args[0])
	switch action {
	case ActionUp, ActionDown, ActionVersion:
		return Command{Action: action}, nil
	case ActionSteps, ActionForce:
		if len(args) < 2 {
			return Command{}, fmt.Errorf("%w: %s requires a number", ErrMissingArgument, action)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return Command{}, fmt.Errorf("%w: %q is not a number", ErrInvalidArgument, args[1])
		}
		if action == ActionSteps && n == 0 {
			return Command{}, fmt.Errorf("%w: steps must be non-zero", ErrInvalidArgument)
		}
		if action == ActionForce && n < -1 {
			return Command{}, fmt.Errorf("%w: version must be -1 or greater", ErrInvalidArgument)
		}
		return Command{Action: action, Arg: n}, nil
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}
}
