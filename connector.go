package tappersona

import (
	"os"

	"github.com/datazip-inc/tap-persona/drivers/abstract"
	"github.com/datazip-inc/tap-persona/protocol"
	"github.com/datazip-inc/tap-persona/utils/logger"
	"github.com/datazip-inc/tap-persona/utils/safego"
)

func RegisterDriver(driver abstract.DriverInterface) {
	defer safego.Recovery(true)

	// Execute the root command
	err := protocol.CreateRootCommand(driver).Execute()
	if err != nil {
		logger.Fatal(err)
	}

	os.Exit(0)
}
