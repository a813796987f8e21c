package control

import (
	"testing"

	"go.viam.com/test"

	"github.com/viam-labs/cartesian-velocity/utils"
)

func TestParseConfig(t *testing.T) {
	for _, tc := range []struct {
		name       string
		attributes utils.AttributeMap
		err        string
		mode       CommandMode
	}{
		{
			"valid",
			utils.AttributeMap{"publish_rate": 50.0},
			"",
			CommandModeVelocity,
		},
		{
			"explicit mode",
			utils.AttributeMap{"publish_rate": 50.0, "command_mode": "integrated_position"},
			"",
			CommandModeIntegratedPosition,
		},
		{
			"telemetry disabled",
			utils.AttributeMap{"publish_rate": -1.0},
			"",
			CommandModeVelocity,
		},
		{
			"missing publish_rate",
			utils.AttributeMap{},
			"publish_rate",
			"",
		},
		{
			"unknown command mode",
			utils.AttributeMap{"publish_rate": 50.0, "command_mode": "torque"},
			`unknown command_mode "torque"`,
			"",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			conf, err := ParseConfig(tc.attributes)
			if tc.err == "" {
				test.That(t, err, test.ShouldBeNil)
				test.That(t, conf.PublishRate, test.ShouldNotBeNil)
				test.That(t, conf.CommandMode, test.ShouldEqual, tc.mode)
			} else {
				test.That(t, err, test.ShouldNotBeNil)
				test.That(t, err.Error(), test.ShouldContainSubstring, tc.err)
			}
		})
	}
}

func TestParseConfigRejectsBadTypes(t *testing.T) {
	_, err := ParseConfig(utils.AttributeMap{"publish_rate": "fast"})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot decode controller attributes")
}
