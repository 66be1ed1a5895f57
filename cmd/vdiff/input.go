package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/pkg/host"
	"github.com/vango-dev/vdiff/pkg/reconcile"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

// isHTML reports whether path names an HTML fragment rather than a JSON tree.
func isHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// readTree reads a JSON tree, or an HTML fragment parsed to a fragment
// root. "-" reads standard input.
func readTree(path string) (*vdom.Node, error) {
	if isHTML(path) {
		root, err := readHost(path)
		if err != nil {
			return nil, err
		}
		return host.Parse(root), nil
	}

	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	var tree *vdom.Node
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, errors.New("E151").WithDetailf("%s", path).Wrap(err)
	}
	return tree, nil
}

// readHost reads an HTML fragment as a host tree.
func readHost(path string) (*host.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New("E150").WithDetailf("%s", path).Wrap(err)
	}
	defer f.Close()

	root, err := host.ParseHTML(f)
	if err != nil {
		return nil, errors.New("E151").WithDetailf("%s", path).Wrap(err)
	}
	return root, nil
}

func readInput(path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.New("E150").WithDetailf("%s", path).Wrap(err)
	}
	return data, nil
}

// loadMounted returns the host tree to patch and its abstract form. HTML
// input is parsed as mounted; JSON input is materialized.
func loadMounted(r *reconcile.Reconciler, path string) (*host.Node, *vdom.Node, error) {
	if isHTML(path) {
		root, err := readHost(path)
		if err != nil {
			return nil, nil, err
		}
		return root, host.Parse(root), nil
	}

	tree, err := readTree(path)
	if err != nil {
		return nil, nil, err
	}
	if tree == nil {
		return nil, nil, nil
	}
	root, err := r.Builder().Materialize(tree)
	if err != nil {
		return nil, nil, err
	}
	return root, tree, nil
}
