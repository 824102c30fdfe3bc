package constants

import "time"

// Manifest defaults
const (
	DefaultManifestPath = "BundlePackingInfo-Android.json"
	DefaultGroupCount   = 4
)

// Output format
const (
	DefaultOutputKey = "bundle-packs"
	NameSeparator    = ","
	GroupSeparator   = "|"
)

// DefaultBundlePacks is emitted when the manifest cannot be resolved and no
// override is configured.
const DefaultBundlePacks = "FullPatch_100.zip,FullPatch_101.zip|FullPatch_102.zip,FullPatch_103.zip"

// Environment variables
const (
	EnvDefaultBundlePacks = "DEFAULT_BUNDLE_PACKS"
	EnvPrefix             = "BUNDLE_PACKS"
)

// Group sources
const (
	SourceManifest = "manifest"
	SourceFallback = "fallback"
)

// Pub/Sub message attributes
const (
	AttrBatchID    = "batch_id"
	AttrGroupIndex = "group_index"
	AttrGroupCount = "group_count"
	AttrSource     = "source"
)

// Publish defaults
const (
	DefaultPublishTimeoutSeconds = 30
	DefaultPublishTimeout        = 30 * time.Second
)
