// Package github implements the version control client used by the
// migration flow: branch creation from the default branch, commits via
// the Git Data API and pull request creation.
//
// Everything goes through the hosting API rather than the local
// checkout, so the client stays correct when the workspace is in a
// detached-head state.
package github
