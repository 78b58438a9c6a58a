package prompt

// builtinOrder fixes the presentation order of the built-in dimensions.
// Both tables are package-level and never mutated; callers wanting
// additions go through a Library.
var builtinOrder = []string{
	"complexity",
	"abstraction",
	"deletion",
	"hallucination",
	"style",
	"security",
	"performance",
	"duplication",
	"error_handling",
	"testing",
}

var builtinDimensions = map[string]string{
	"complexity": `**Unnecessary Complexity**
- Overly complex algorithms or functions
- Unnecessary abstraction layers
- Convoluted control flow
- Functions/methods that are too long or have too many parameters
- Nesting levels that are too deep`,

	"abstraction": `**Poor Abstractions**
- Inappropriate use of design patterns
- Missing abstractions where needed
- Leaky abstractions that expose implementation details
- Overly generic abstractions that add complexity
- Unclear separation of concerns`,

	"deletion": `**Unintended Code Deletion**
- Critical functionality removed without replacement
- Incomplete removal of deprecated code
- Breaking changes to public APIs
- Removed error handling or validation
- Missing edge case handling present in original code`,

	"hallucination": `**Hallucinated Components**
- References to non-existent functions, classes, or modules
- Assumptions about available libraries or APIs
- Inconsistent or impossible behavior expectations
- References to frameworks or patterns not used in the project
- Creation of interfaces that don't align with the codebase`,

	"style": `**Style Inconsistencies**
- Deviation from project coding standards
- Inconsistent naming conventions
- Inconsistent formatting or indentation
- Inconsistent comment styles or documentation
- Mixing of different programming paradigms`,

	"security": `**Security Vulnerabilities**
- Injection vulnerabilities (SQL, Command, etc.)
- Insecure data handling or storage
- Authentication or authorization flaws
- Exposure of sensitive information
- Unsafe dependencies or API usage`,

	"performance": `**Performance Issues**
- Inefficient algorithms or data structures
- Unnecessary computations or operations
- Resource leaks (memory, file handles, etc.)
- Excessive network or disk operations
- Blocking operations in asynchronous code`,

	"duplication": `**Code Duplication**
- Repeated logic or functionality
- Copy-pasted code with minor variations
- Duplicate functionality across different modules
- Redundant validation or error handling
- Parallel hierarchies or structures`,

	"error_handling": `**Incomplete Error Handling**
- Missing try-catch blocks for risky operations
- Overly broad exception handling
- Swallowed exceptions without proper logging
- Unclear error messages or codes
- Inconsistent error recovery strategies`,

	"testing": `**Test Coverage Gaps**
- Missing unit tests for critical functionality
- Uncovered edge cases or error paths
- Brittle tests that make inappropriate assumptions
- Missing integration or system tests
- Tests that don't verify actual requirements`,
}

// BuiltinKeys returns the built-in dimension keys in presentation order.
func BuiltinKeys() []string {
	keys := make([]string, len(builtinOrder))
	copy(keys, builtinOrder)
	return keys
}
