package process

import (
	"flight_cfg/translate"
	"flight_cfg/util/chat"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// MainLanguage represents language of built-in messages
const MainLanguage = "en"

// Messages represents translatable messages printed by the program
type Messages struct {
	reg  *translate.Registry
	lang string

	NoInputs     translate.Entry
	Valid        translate.Entry
	Invalid      translate.Entry
	Written      translate.Entry
	Unchanged    translate.Entry
	Skipped      translate.Entry
	Failed       translate.Entry
	Overwrite    translate.Entry
	Summary      translate.Entry
	WatchStarted translate.Entry
	WatchStopped translate.Entry
}

// NewMessages returns messages in <lang> language, writing language files to <dir>
func NewMessages(log *logrus.Logger, dir, lang string) (*Messages, error) {
	reg := translate.NewRegistry(log, dir, MainLanguage)
	m := &Messages{
		reg:          reg,
		lang:         lang,
		NoInputs:     reg.Register("no inputs", "&eNo inputs given, see --help"),
		Valid:        reg.Register("valid", "&a%input%&r is a valid YAML document"),
		Invalid:      reg.Register("invalid", "&c%input%&r is not valid: %reason%"),
		Written:      reg.Register("written", "&aWrote&r %output%"),
		Unchanged:    reg.Register("unchanged", "%output% is up to date"),
		Skipped:      reg.Register("skipped", "&eSkipped&r %output%"),
		Failed:       reg.Register("failed", "&cFailed to process&r %input%: %reason%"),
		Overwrite:    reg.Register("overwrite", "%output% already exists. Overwrite? [y/n]: "),
		Summary:      reg.Register("summary", "Processed {total} files: {written} written, {unchanged} unchanged, {skipped} skipped, {failed} failed"),
		WatchStarted: reg.Register("watch started", "Processing %count% files every %interval%", "&7Press Ctrl+C to stop"),
		WatchStopped: reg.Register("watch stopped", "Stopped watching files"),
	}
	if lang != MainLanguage {
		reg.RegisterLanguage(lang)
	}
	if err := reg.Setup(); err != nil {
		return nil, errors.Wrap(err, "Set up messages")
	}
	return m, nil
}

// Text returns message <e> colorized and with tokens replaced by <vars> given as name, value, ...
func (m *Messages) Text(e translate.Entry, vars ...any) string {
	return chat.Colorize(m.reg.StringIn(m.lang, e, vars...))
}

// Lines returns lines of message <e> colorized and with tokens replaced by <vars> given as name, value, ...
func (m *Messages) Lines(e translate.Entry, vars ...any) []string {
	return lo.Map(m.reg.ListIn(m.lang, e, vars...), func(s string, _ int) string {
		return chat.Colorize(s)
	})
}

// Plain returns message <e> without color codes and with tokens replaced by <vars> given as name, value, ...
func (m *Messages) Plain(e translate.Entry, vars ...any) string {
	return chat.Strip(m.reg.StringIn(m.lang, e, vars...))
}
