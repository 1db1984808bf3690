package process

import (
	"net/http"

	"flight_cfg/settings"
	"flight_cfg/util/network"
	"flight_cfg/util/tw"

	"github.com/sirupsen/logrus"
)

// repo represents dependencies holder for this package
type repo struct {
	log    *logrus.Logger
	tw     tw.Writer
	set    settings.Root
	msg    *Messages
	client *http.Client
}

// NewRepo returns new dependencies holder for this package
func NewRepo(log *logrus.Logger, tw tw.Writer, set settings.Root, msg *Messages) repo {
	return repo{log: log, tw: tw, set: set, msg: msg, client: network.NewHttpClient(set.Remote.Timeout)}
}

// Log used to satisfy deps.Global interface
func (r repo) Log() *logrus.Logger {
	return r.log
}

// TW used to satisfy deps.Global interface
func (r repo) TW() tw.Writer {
	return r.tw
}

// Settings used to satisfy deps.Global interface
func (r repo) Settings() settings.Root {
	return r.set
}
