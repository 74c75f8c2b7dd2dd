package presets

import (
	"github.com/spacemeshos/go-parachain/config"
	"github.com/spacemeshos/go-parachain/log"
)

func init() {
	register("elastic", elastic())
}

func elastic() config.Config {
	conf := config.DefaultConfig()

	conf.Backing.ElasticScaling = true
	conf.Candidates.ClaimQueueDepth = 4
	conf.Candidates.Workers = 16

	conf.Logging.Encoder = log.JSONFormat
	return conf
}
