package cfg

import (
	"fmt"

	"flight_cfg/util/file"
	"flight_cfg/yamlfile"

	"github.com/cockroachdb/errors"
)

// upgrade migrates <c> from the stored version to the target version one version at a time.
//
// Backup copy of the config file is created before the first step. Empty config is considered up to date.
func (f *File) upgrade(c *yamlfile.Config) error {
	if f.version == nil {
		return nil
	}
	target := f.version.target
	if c.IsEmpty() {
		c.Set(f.version.key, target)
		return nil
	}

	current := storedVersion(c, f.version.key)
	if current > target {
		err := VersionAheadError{Path: f.path, Version: current, Target: target}
		return errors.Mark(errors.Wrap(err, "Check config version"), ErrVersionAhead)
	}
	if current == target {
		if !c.Has(f.version.key) {
			c.Set(f.version.key, target)
		}
		return nil
	}
	f.checkSteps()

	if err := f.backup(); err != nil {
		return err
	}
	from := current
	for ; current < target; current++ {
		for _, e := range f.entries {
			step, ok := e.steps[current]
			if !ok {
				continue
			}
			oldKey := step.oldKey
			if oldKey == "" {
				oldKey = e.key
			}
			value, _ := c.Get(oldKey)
			if step.convert != nil {
				value = step.convert(value)
			}
			f.log.Debugf("Upgrading %v: %v -> %v: %v", oldKey, current, e.key, current+1)
			c.Unset(oldKey)
			c.Set(e.key, value)
		}
		c.Set(f.version.key, current+1)
	}
	c.PruneEmpty()
	f.log.Infof("Upgraded config %v from version %v to %v", f.path, from, target)
	return nil
}

// checkSteps panics if any entry has upgrade step which would never run because it is not below target version
func (f *File) checkSteps() {
	for _, e := range f.entries {
		for version := range e.steps {
			e.checkStep(version)
		}
	}
}

// backup copies config file to <path>.backup-<epoch millis>
func (f *File) backup() error {
	if !file.Exists(f.path) {
		return nil
	}
	dst := f.backupPath()
	if err := file.Copy(f.path, dst); err != nil {
		return errors.Mark(errors.Wrap(err, "Create backup copy of config"), ErrBackup)
	}
	f.log.Infof("Created backup copy of config %v at %v", f.path, dst)
	return nil
}

// backupPath returns path of backup copy of the config file for the current time
func (f *File) backupPath() string {
	return fmt.Sprintf("%v.backup-%v", f.path, f.now().UnixMilli())
}

// storedVersion returns version stored at <key> in <c> or 0 if it is missing or not a number
func storedVersion(c *yamlfile.Config, key string) int {
	v, ok := c.Get(key)
	if !ok {
		return 0
	}
	version, ok := yamlfile.AsFloat(v)
	if !ok {
		return 0
	}
	return int(version)
}
