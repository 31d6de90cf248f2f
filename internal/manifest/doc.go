// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package manifest reads the host manifest: the ordered list of installed
// components that discovery walks, and the discovery settings that apply to
// them. Manifests are HCL files:
//
//	discovery {
//	  module = "registrations"
//	}
//
//	component "quiz" {
//	  path = "${env.HOME}/.appregister/plugins/quiz"
//	}
//
// # Core Concepts
//
//   - Manifest: everything loaded from one file or a directory of .hcl files.
//     Components keep the order in which they appear, file by file in lexical
//     order, because that order is the discovery order.
//
//   - Component: one installed component. Its path is the directory a
//     discovery.PluginLoader scans; relative paths are taken from the file
//     that declares the component, and a missing path defaults to the
//     component name.
//
// Expressions are evaluated with a single variable, env, holding the process
// environment.
package manifest
