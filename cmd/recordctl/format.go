package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zoobzio/record"
	"github.com/zoobzio/record/bson"
	"github.com/zoobzio/record/json"
	"github.com/zoobzio/record/msgpack"
	"github.com/zoobzio/record/yaml"
)

// formatFor resolves a format name or a file path by extension.
func formatFor(name string) (record.Format, error) {
	key := strings.ToLower(name)
	if ext := filepath.Ext(key); ext != "" {
		key = ext[1:]
	}
	switch key {
	case "json":
		return json.New(), nil
	case "yaml", "yml":
		return yaml.New(), nil
	case "msgpack", "mp", "mpk":
		return msgpack.New(), nil
	case "bson":
		return bson.New(), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want json, yaml, msgpack, or bson)", name)
	}
}
