package config

// Backends.
const (
	BackendLSP        = "lsp"
	BackendTreeSitter = "treesitter"
)

// Config is the arthas-copy configuration file.
type Config struct {
	// Version for future compatibility
	Version string `yaml:"version,omitempty" json:"version,omitempty"`

	// Backend selects where language queries go
	Backend string `yaml:"backend,omitempty" json:"backend,omitempty" validate:"omitempty,oneof=lsp treesitter" jsonschema:"enum=lsp,enum=treesitter"`

	LanguageServer LanguageServerConfig `yaml:"languageServer,omitempty" json:"languageServer,omitempty"`

	// Strategies overrides the order in which resolution strategies run
	Strategies []string `yaml:"strategies,omitempty" json:"strategies,omitempty" validate:"omitempty,unique,dive,oneof=definition hover type-hierarchy document-symbol"`

	// Templates defines extra command modes, keyed by mode name
	Templates map[string]string `yaml:"templates,omitempty" json:"templates,omitempty" validate:"omitempty,dive,required"`

	Clipboard ClipboardConfig `yaml:"clipboard,omitempty" json:"clipboard,omitempty"`

	Log LogConfig `yaml:"log,omitempty" json:"log,omitempty"`
}

// LanguageServerConfig describes how to reach the Java language server.
type LanguageServerConfig struct {
	// Address of a running server, host:port
	Address string `yaml:"address,omitempty" json:"address,omitempty" validate:"omitempty,hostname_port"`
	// DialTries bounds connection attempts to Address
	DialTries uint `yaml:"dialTries,omitempty" json:"dialTries,omitempty"`
	// DialTimeout bounds the total time spent connecting to Address
	DialTimeout string `yaml:"dialTimeout,omitempty" json:"dialTimeout,omitempty"`

	// Command starts a server speaking LSP on stdio
	Command string            `yaml:"command,omitempty" json:"command,omitempty"`
	Args    []string          `yaml:"args,omitempty" json:"args,omitempty"`
	Env     map[string]string `yaml:"env,omitempty" json:"env,omitempty"`

	// JdtlsHome is an unpacked jdtls distribution
	JdtlsHome  string `yaml:"jdtlsHome,omitempty" json:"jdtlsHome,omitempty"`
	JavaExec   string `yaml:"javaExec,omitempty" json:"javaExec,omitempty"`
	LombokPath string `yaml:"lombokPath,omitempty" json:"lombokPath,omitempty"`
	DataDir    string `yaml:"dataDir,omitempty" json:"dataDir,omitempty"`

	// WorkspaceRoot is sent as the root URI. Defaults to the working directory.
	WorkspaceRoot string `yaml:"workspaceRoot,omitempty" json:"workspaceRoot,omitempty"`

	// RequestTimeout bounds each request. Unset means no timeout.
	RequestTimeout string `yaml:"requestTimeout,omitempty" json:"requestTimeout,omitempty"`

	InitializationOptions map[string]any `yaml:"initializationOptions,omitempty" json:"initializationOptions,omitempty"`

	// InitPatch is a JSON Patch applied to the initialize params
	InitPatch []map[string]any `yaml:"initPatch,omitempty" json:"initPatch,omitempty"`
}

// ClipboardConfig controls the clipboard.
type ClipboardConfig struct {
	// Enabled set to false prints commands instead of copying them
	Enabled *bool `yaml:"enabled,omitempty" json:"enabled,omitempty"`
}

// LogConfig controls diagnostics written to stderr.
type LogConfig struct {
	Level string `yaml:"level,omitempty" json:"level,omitempty" validate:"omitempty,oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
}
