package opts

import (
	"github.com/walteh/gridq/pkg/config"
	"github.com/walteh/gridq/pkg/log"
	"github.com/walteh/gridq/pkg/status"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config   *config.Config
	Status   *status.Manager
	Feedback *log.Feedback
}

// TODO(dr.methodical): 🧪 Add tests for option validation
