package worker_test

import "github.com/sreevallabh04/gitalong/pkg/logger"

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}
