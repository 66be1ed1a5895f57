package main

import (
	"io"
	"log/slog"

	"github.com/vango-dev/vdiff/internal/config"
	"github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/pkg/render"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

// globalOptions carries the persistent flags and what they resolve to.
type globalOptions struct {
	configPath   string
	logLevel     string
	logFormat    string
	identityAttr string

	stderr io.Writer
	config *config.Config
	logger *slog.Logger
}

// load resolves the configuration: the --config file, else the nearest
// vdiff.json, else defaults. Flags override the file.
func (o *globalOptions) load() error {
	cfg, err := o.readConfig()
	if err != nil {
		return err
	}

	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
	if o.identityAttr != "" {
		cfg.Diff.IdentityAttr = o.identityAttr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.LogLevel()
	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(o.stderr, handlerOpts)
	} else {
		handler = slog.NewTextHandler(o.stderr, handlerOpts)
	}

	o.config = cfg
	o.logger = slog.New(handler)
	return nil
}

func (o *globalOptions) readConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFile(o.configPath)
	}
	root, err := config.FindProjectRoot(".")
	if err != nil {
		if errors.HasCode(err, "E141") {
			return config.New(), nil
		}
		return nil, err
	}
	return config.Load(root)
}

func (o *globalOptions) matcher() vdom.Matcher {
	return vdom.Matcher{IdentityAttr: o.config.Diff.IdentityAttr}
}

func (o *globalOptions) renderConfig() render.Config {
	return render.Config{
		Pretty: o.config.Render.Pretty,
		Indent: o.config.Render.Indent,
	}
}
