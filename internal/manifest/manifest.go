// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file decodes manifest files into the Manifest model.
package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/appregister/internal/ctxlog"
	"github.com/specialistvlad/appregister/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
)

// FileExtension is the extension of manifest files.
const FileExtension = ".hcl"

// Manifest is the decoded host manifest.
type Manifest struct {
	// Module is the discovery submodule, empty when no file sets it.
	Module     string
	Components []*Component
	Files      []string
}

// Component is one installed component.
type Component struct {
	Name string
	Path string
	File string // declaring file
}

// hclManifestFile represents the top-level structure of a manifest file for decoding.
type hclManifestFile struct {
	Discovery  *hclDiscovery   `hcl:"discovery,block"`
	Components []*hclComponent `hcl:"component,block"`
}

type hclDiscovery struct {
	Module string `hcl:"module,optional"`
}

type hclComponent struct {
	Name string `hcl:"name,label"`
	Path string `hcl:"path,optional"`
}

// Dirs returns the component paths in discovery order.
func (m *Manifest) Dirs() []string {
	dirs := make([]string, 0, len(m.Components))
	for _, c := range m.Components {
		dirs = append(dirs, c.Path)
	}
	return dirs
}

// DiscoveryModule returns the manifest's module, or fallback when unset.
func (m *Manifest) DiscoveryModule(fallback string) string {
	if m.Module != "" {
		return m.Module
	}
	return fallback
}

// Component returns the component with the given name.
func (m *Manifest) Component(name string) (*Component, bool) {
	for _, c := range m.Components {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Load reads a manifest file, or every .hcl file under a directory.
func Load(ctx context.Context, path string) (*Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading manifest.", "path", path)

	files, err := fsutil.FindFilesByExtension(path, FileExtension)
	if err != nil {
		return nil, fmt.Errorf("failed to find manifest files in %s: %w", path, err)
	}

	m := &Manifest{}
	if len(files) == 0 {
		logger.Warn("No manifest files found in path, returning empty manifest", "path", path)
		return m, nil
	}

	parser := hclparse.NewParser()
	evalCtx := newEvalContext()
	for _, file := range files {
		if err := m.decodeFile(file, parser, evalCtx); err != nil {
			return nil, err
		}
	}

	logger.Debug("Manifest loaded.", "files", len(m.Files), "components", len(m.Components), "module", m.Module)
	return m, nil
}

// decodeFile parses a single HCL file and merges it into m.
func (m *Manifest) decodeFile(filePath string, parser *hclparse.Parser, evalCtx *hcl.EvalContext) error {
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
	}

	var parsed hclManifestFile
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &parsed)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", filePath, diags)
	}

	if parsed.Discovery != nil && parsed.Discovery.Module != "" {
		if m.Module != "" && m.Module != parsed.Discovery.Module {
			return fmt.Errorf("%s: discovery module %q conflicts with %q set earlier", filePath, parsed.Discovery.Module, m.Module)
		}
		m.Module = parsed.Discovery.Module
	}

	baseDir := filepath.Dir(filePath)
	for _, pc := range parsed.Components {
		if strings.TrimSpace(pc.Name) == "" {
			return fmt.Errorf("%s: component name must not be empty", filePath)
		}
		if existing, ok := m.Component(pc.Name); ok {
			return fmt.Errorf("%s: component %q already declared in %s", filePath, pc.Name, existing.File)
		}
		path := pc.Path
		if path == "" {
			path = pc.Name
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		m.Components = append(m.Components, &Component{
			Name: pc.Name,
			Path: filepath.Clean(path),
			File: filePath,
		})
	}

	m.Files = append(m.Files, filePath)
	return nil
}

// newEvalContext exposes the process environment as the env object.
func newEvalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 && pair[0] != "" {
			env[pair[0]] = cty.StringVal(pair[1])
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
	}
}
