// main holds the entry logic for the lookout CLI.
package main

import (
	"os"

	"github.com/mosegui/lookout/cmd"
	"github.com/mosegui/lookout/internal/contract"
	"github.com/mosegui/lookout/internal/iocache"
)

func main() {
	defer iocache.CloseStores()

	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()

	if profErr := cmd.StopProfiling(); profErr != nil {
		contract.LogWarn("failed to stop profiling", profErr)
	}

	if err != nil {
		contract.LogWarn("command failed", err)
		iocache.CloseStores()
		os.Exit(1)
	}
}
