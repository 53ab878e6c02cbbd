// Package assets provides document outlines for the bakery plan generator.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	OutlineLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (business-plan)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// An outline is raw YAML or Markdown; package outline turns it into blocks.
//
// # Directory Structure
//
//	{basePath}/
//	└── outlines/
//	    └── {name}.yaml|.yml|.md
//
// # Security
//
// Outline names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
