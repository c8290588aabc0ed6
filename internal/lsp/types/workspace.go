package types

// ExecuteCommandParams is sent with workspace/executeCommand.
type ExecuteCommandParams struct {
	Command   string `json:"command"`
	Arguments []any  `json:"arguments,omitempty"`
}

// JDT LS specific commands.
const (
	// JavaWorkspaceCommand delegates to a command registered by a JDT LS bundle.
	JavaWorkspaceCommand = "java.execute.workspaceCommand"
	// JavaResolveTypeHierarchy is not guaranteed to exist in every JDT LS build.
	JavaResolveTypeHierarchy = "java.execute.resolveTypeHierarchy"
)

// TypeHierarchyEntry is the subset of a type hierarchy item the resolver reads.
type TypeHierarchyEntry struct {
	Name               string `json:"name,omitempty"`
	FullyQualifiedName string `json:"fullyQualifiedName,omitempty"`
	URI                string `json:"uri,omitempty"`
}
