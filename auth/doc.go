// Package auth resolves credentials for remote repository access.
//
// Three credential sources are supported:
//
//   - Environment tokens: GITHUB_TOKEN/GH_TOKEN and GITLAB_TOKEN,
//     the common case for personal access tokens.
//   - GitHub App installations: a short-lived RS256 JWT signed with
//     the app's private key, exchanged for an installation token.
//   - ssh-agent: a preflight check that an agent is reachable and
//     holds at least one key, used before SSH-based git operations.
//
// Missing credentials are reported with sentinel errors so callers can
// degrade to anonymous access where the host allows it.
package auth
