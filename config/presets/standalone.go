package presets

import (
	"github.com/spacemeshos/go-parachain/config"
	"github.com/spacemeshos/go-parachain/log"
)

func init() {
	register("standalone", standalone())
}

// standalone checks candidates on a single thread with a single backer.
func standalone() config.Config {
	conf := config.DefaultConfig()

	conf.Candidates.Workers = 1
	conf.Candidates.CacheSize = 64

	conf.Backing.MinBackingVotes = 1

	conf.Logging.Encoder = log.ConsoleFormat
	conf.Logging.AppLoggerLevel = "debug"
	return conf
}
