package control

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"github.com/viam-labs/cartesian-velocity/utils"
)

// CommandMode selects how the solved joint velocity vector is written to the
// actuator interface.
type CommandMode string

// The supported command writer strategies.
const (
	// CommandModeVelocity writes each solved joint velocity unchanged to a
	// velocity-mode actuator.
	CommandModeVelocity = CommandMode("velocity")
	// CommandModeIntegratedPosition integrates the solved velocity over one
	// cycle and writes the resulting position, for position-mode actuators
	// without true velocity control.
	CommandModeIntegratedPosition = CommandMode("integrated_position")
)

// Config holds the controller attributes.
type Config struct {
	// PublishRate is the telemetry frequency in Hz. It must be present; zero
	// or negative disables telemetry.
	PublishRate *float64 `json:"publish_rate" mapstructure:"publish_rate"`
	// CommandMode selects the command writer strategy; defaults to velocity.
	CommandMode CommandMode `json:"command_mode,omitempty" mapstructure:"command_mode"`
}

// ParseConfig decodes and validates controller attributes.
func ParseConfig(attributes utils.AttributeMap) (*Config, error) {
	var conf Config
	if err := mapstructure.Decode(map[string]interface{}(attributes), &conf); err != nil {
		return nil, errors.Wrap(err, "cannot decode controller attributes")
	}
	if conf.CommandMode == "" {
		conf.CommandMode = CommandModeVelocity
	}
	if err := conf.Validate(""); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) error {
	var err error
	if conf.PublishRate == nil {
		err = multierr.Append(err, goutils.NewConfigValidationFieldRequiredError(path, "publish_rate"))
	}
	switch conf.CommandMode {
	case CommandModeVelocity, CommandModeIntegratedPosition, "":
	default:
		err = multierr.Append(err, errors.Errorf("unknown command_mode %q", conf.CommandMode))
	}
	return err
}
