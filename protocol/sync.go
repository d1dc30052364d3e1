package protocol

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/datazip-inc/tap-persona/constants"
	"github.com/datazip-inc/tap-persona/destination"
	"github.com/datazip-inc/tap-persona/types"
	"github.com/datazip-inc/tap-persona/utils"
	"github.com/datazip-inc/tap-persona/utils/logger"
)

// syncCmd initiates the source fetchers and runs the sync
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "sync command",
	Long:  `Sync command starts reading the selected streams and emits records and state checkpoints`,
	Example: `
// Base command:
tap-persona sync --config path/to/config --streams path/to/streams

// With State:
tap-persona sync --config path/to/config --streams path/to/streams --state path/to/state
`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if configPath == "not-set" {
			return fmt.Errorf("--config not passed")
		}

		if err := utils.UnmarshalFile(configPath, connector.GetConfigRef(), false); err != nil {
			return err
		}

		catalog = &types.Catalog{}
		streamsFile := viper.GetString(constants.StreamsPath)
		if err := utils.UnmarshalFile(streamsFile, catalog, false); err != nil {
			return fmt.Errorf("failed to read streams file (run discover first): %s", err)
		}

		// default state
		state = types.NewState()
		if statePath != "" {
			if err := utils.UnmarshalFile(statePath, state, false); err != nil {
				return err
			}
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := connector.Setup(cmd.Context()); err != nil {
			return err
		}
		connector.SetupState(state)

		pool, err := destination.NewWriterPool(cmd.Context(), &destination.WriterConfig{Type: destination.StdoutWriter})
		if err != nil {
			return err
		}

		// get source streams
		streams, err := connector.Discover(cmd.Context())
		if err != nil {
			return err
		}
		streamsMap := types.StreamsToMap(streams...)

		// validate configured streams and classify by sync mode
		selectedStreams := []string{}
		fullLoadStreams := []types.StreamInterface{}
		incrementalStreams := []types.StreamInterface{}
		_, _ = utils.ArrayContains(catalog.Streams, func(elem *types.ConfiguredStream) bool {
			source, found := streamsMap[elem.ID()]
			if !found {
				logger.Warnf("Skipping; Configured Stream %s not found in source", elem.ID())
				return false
			}

			if err := elem.Validate(source); err != nil {
				logger.Warnf("Skipping; Configured Stream %s found invalid due to reason: %s", elem.ID(), err)
				return false
			}

			selectedStreams = append(selectedStreams, elem.ID())
			if elem.Stream.SyncMode == types.INCREMENTAL {
				incrementalStreams = append(incrementalStreams, elem)
			} else {
				fullLoadStreams = append(fullLoadStreams, elem)
			}
			return false
		})
		if len(selectedStreams) == 0 {
			return fmt.Errorf("no valid streams found in catalog")
		}
		logger.Infof("Valid selected streams are %s", strings.Join(selectedStreams, ", "))

		syncStartTime := time.Now()
		if err := connector.Read(cmd.Context(), pool, fullLoadStreams, incrementalStreams); err != nil {
			return fmt.Errorf("error occurred while reading records: %s", err)
		}

		logger.Infof("Total records read: %d in %s", pool.TotalRecords(), time.Since(syncStartTime).String())

		// the pool must drain before the final state emission; a state
		// line ahead of its records would let a consumer skip them
		return utils.ErrExecSequential(
			utils.ErrExecFormat("failed to close writer pool: %s", pool.Close),
			func() error {
				if !state.IsZero() {
					logger.LogState(state)
				}
				return nil
			},
		)
	},
}
