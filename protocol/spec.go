package protocol

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datazip-inc/tap-persona/types"
	"github.com/datazip-inc/tap-persona/utils/jsonschema"
	"github.com/datazip-inc/tap-persona/utils/logger"
)

// specCmd emits the JSON schema of the connector configuration
var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "spec command",
	RunE: func(_ *cobra.Command, _ []string) error {
		schema, err := jsonschema.Reflect(connector.Spec())
		if err != nil {
			return fmt.Errorf("failed to reflect config: %s", err)
		}

		logger.LogMessage(types.Message{
			Type: types.SpecMessage,
			Spec: schema,
		})
		logger.FileLogger(map[string]any{"spec": schema}, "spec", ".json")

		return nil
	},
}
