// Package changelog turns conventional-commit history into a Keep a Changelog
// style markdown document.
//
// The pipeline runs in one pass:
//   - ParseCommit classifies a commit subject into Added, Changed or Fixed
//   - Resolver partitions classified commits into releases bounded by tags
//   - Categorize groups each release by category, dropping duplicate bullets
//   - RenderMarkdown emits the document, newest release first
//
// History access is abstracted behind HistorySource so the pipeline never
// spawns processes or touches a repository directly.
package changelog
