package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for history tracking.
	DatabaseBackend string

	// DisplayMode represents the surface a rendered light curve is handed to.
	DisplayMode string

	// ImageFormat represents the encoding of a rendered light curve.
	ImageFormat string

	// TableFormat represents the on-disk layout of a light curve table.
	TableFormat string

	// Outcome represents the terminal state of a single invocation.
	Outcome string

	// Command names an operation recorded in history.
	Command string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All display modes supported.
const (
	WindowDisplay DisplayMode = "window" // default
	ViewerDisplay DisplayMode = "viewer"
	NoDisplay     DisplayMode = "none"
)

// All image formats supported.
const (
	PNGImage ImageFormat = "png" // default
	SVGImage ImageFormat = "svg"
)

// All table formats supported.
const (
	AutoTable TableFormat = ""
	CSVTable  TableFormat = "csv"
	ECSVTable TableFormat = "ecsv"
)

// All outcomes recorded for an invocation.
const (
	OutcomeOK           Outcome = "ok"
	OutcomeNotFound     Outcome = "not_found"
	OutcomeValidation   Outcome = "validation"
	OutcomeUnclassified Outcome = "unclassified"
)

// All commands recorded in history.
const (
	RenderCommand  Command = "render"
	FoldCommand    Command = "fold"
	ConvertCommand Command = "convert"
	InspectCommand Command = "inspect"
)

// Default column names of a light curve table.
const (
	DefaultPhaseColumn = "phase"
	DefaultFluxColumn  = "normalized_flux"
	DefaultTimeColumn  = "jd"
	DefaultRawFlux     = "flux"
	ISOTimeColumn      = "time"
)

// Plot labels.
const (
	PhaseLabel  = "Phase"
	FluxLabel   = "Normalized Flux"
	TitlePrefix = "Light Curve: "
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidDisplayModes lists all valid display modes.
var ValidDisplayModes = map[DisplayMode]struct{}{
	WindowDisplay: {},
	ViewerDisplay: {},
	NoDisplay:     {},
}

// ValidImageFormats lists all valid image formats.
var ValidImageFormats = map[ImageFormat]struct{}{
	PNGImage: {},
	SVGImage: {},
}
