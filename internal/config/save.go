package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/traysheet/internal/log"
)

var sectionComments = map[string]string{
	"catalog": "Modes and models offered by the tray.\n" +
		"Entries without an id get a generated one. Exactly one mode may set toggle: true;\n" +
		"it drives the incognito switch. Reasoning models are hidden from the picker.",
	"tray": "Sheet presentation and session lifecycle.\n" +
		"sizing.mode: fixed (uses height) or breakpoints (smallest of breakpoints that fits)\n" +
		"session_policy: reset (default), retain (in memory) or persist (SQLite at db_path)",
	"tracing": "OpenTelemetry spans for tray tasks.\n" +
		"exporter: none, file, stdout or otlp. file_path defaults to ~/.config/traysheet/traces/traces.jsonl",
	"ui": "Host screen. tagline is markdown; markdown_style is dark, light or notty.",
}

// DefaultConfigYAML renders the default configuration as commented YAML.
func DefaultConfigYAML() ([]byte, error) {
	d := Defaults()
	d.DBPath = ""

	var root yaml.Node
	if err := root.Encode(d); err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	root.HeadComment = "traysheet configuration"

	for i := 0; i+1 < len(root.Content); i += 2 {
		if c, ok := sectionComments[root.Content[i].Value]; ok {
			root.Content[i].HeadComment = c
		}
	}

	// Durations are written in "50ms" form, which viper decodes.
	if trayNode := mappingValue(&root, "tray"); trayNode != nil {
		setScalar(trayNode, "press_delay", d.Tray.PressDelay.String())
		setScalar(trayNode, "return_delay", d.Tray.ReturnDelay.String())
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()
	return buf.Bytes(), nil
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func setScalar(n *yaml.Node, key, value string) {
	if v := mappingValue(n, key); v != nil {
		v.Kind = yaml.ScalarNode
		v.Tag = "!!str"
		v.Value = value
	}
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	data, err := DefaultConfigYAML()
	if err != nil {
		return err
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write atomically (write to temp, then rename)
	temp, err := os.CreateTemp(dir, ".traysheet.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
