package deps

import (
	"flight_cfg/settings"
	"flight_cfg/util/tw"

	"github.com/sirupsen/logrus"
)

// Global represents global dependencies holder interface
type Global interface {
	Log() *logrus.Logger
	TW() tw.Writer
	Settings() settings.Root
}
