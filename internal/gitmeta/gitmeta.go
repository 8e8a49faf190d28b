// Package gitmeta reads branch, commit and remote information from the
// target tree when it is a git work tree, for inclusion in the scan header.
package gitmeta

import (
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/reposcope/reposcope/internal/findings"
)

// Collect returns git metadata for the given tree, or nil when the tree is
// not a git repository. It never fails the scan: the target being a plain
// directory is a supported case.
func Collect(root string) *findings.GitMetadata {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil
	}

	md := &findings.GitMetadata{}

	if head, err := repo.Head(); err == nil {
		if head.Name().IsBranch() {
			branchName := head.Name().Short()
			md.Branch = &branchName
		}
		hash := head.Hash().String()
		md.Commit = &hash
	}

	if remote, err := repo.Remote("origin"); err == nil {
		if cfg := remote.Config(); cfg != nil && len(cfg.URLs) > 0 {
			remoteURL := strings.TrimSuffix(cfg.URLs[0], ".git")
			md.Remote = &remoteURL
		}
	}

	return md
}
