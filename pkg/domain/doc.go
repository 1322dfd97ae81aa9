/*
Package domain contains the core domain models of the runcmd engine.

It defines the values that flow between the placeholder parser, the
interactive resolver, the command executor and the output router. This
package is kept pure and free of external dependencies like I/O or process
management, following Hexagonal Architecture principles.

# Key Entities

  - CommandArguments: The merged, validated invocation parameters.
  - Placeholder: A parsed `${arg_<name>|<default>}` token.
  - Region: A byte span of the host document (or the null region).
  - Result: The captured output of one subprocess execution.
  - Prompt / Preview: What the host shows the user while resolving a placeholder.
*/
package domain
