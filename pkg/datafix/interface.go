/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package datafix

import (
	"github.com/voedger/datafix/pkg/dsl"
	"github.com/voedger/datafix/pkg/dyn"
	"github.com/voedger/datafix/pkg/schemas"
)

// IDataFix is one versioned migration step. The fix is declared against its
// output schema generation; its rule transforms values shaped per the parent
// generation into values shaped per the output one.
type IDataFix interface {
	// Name returns the fix display name used in logs and errors.
	Name() string

	// VersionKey returns the output schema generation of the fix.
	VersionKey() schemas.VersionKey

	// Rule returns the rewrite rule of the fix. The rule is composed once
	// and memoized; composition failures are returned on every call.
	Rule() (dsl.RewriteRule, error)
}

// IDataFixer migrates values between schema generations. Fixers are built by
// Builder.Build, immutable afterwards and safe for concurrent use.
type IDataFixer interface {
	// Update migrates the input value declared under the type name from one
	// generation to another. A range spanning no fix, including from ≥ to,
	// returns the input unchanged.
	Update(typeName string, input dyn.Dynamic, from, to schemas.VersionKey) (dyn.Dynamic, error)

	// Schema returns the nearest schema at or below the key; requests below
	// the first schema return the first one.
	Schema(key schemas.VersionKey) (*schemas.Schema, error)
}

// SchemaFactory constructs the schema of one generation given its version
// key and the resolved parent, nil for the first generation.
type SchemaFactory func(key schemas.VersionKey, parent *schemas.Schema) (*schemas.Schema, error)
