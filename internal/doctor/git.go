package doctor

import (
	"context"

	"github.com/knife-kitchen/kitchen/internal/config"
	"github.com/knife-kitchen/kitchen/internal/gitconfig"
)

// CheckGit reports the Gerrit host and the git client configuration.
func (d *Doctor) CheckGit(ctx context.Context) {
	d.out.Header("Check GIT/Gerrit")
	d.checkParam(config.KeyReviewHost, d.settings.ReviewHost,
		"reviewhost should be set to the FQDN of your Gerrit server (leave out the http:// and the port number)")

	d.checkGitBinary(ctx)
	d.checkGitIdentity(ctx, gitconfig.KeyUserName, "<username>")
	d.checkGitIdentity(ctx, gitconfig.KeyUserEmail, "<email address>")
	d.checkAutoCRLF(ctx)
	d.checkGerritRemote(ctx)
}

func (d *Doctor) checkGitBinary(ctx context.Context) {
	path, err := d.git.LookPath()
	if err != nil {
		d.out.Warn("git is not installed or not on your PATH")
		return
	}
	v, err := d.git.Version(ctx)
	if err != nil {
		d.logger.Debug("git version query failed", "err", err)
		d.out.Warnf("git found at %s but its version could not be determined", path)
		return
	}
	if !gitconfig.AtLeastMinimum(v) {
		d.out.Warnf("git %s found at %s is older than %s", v, path, gitconfig.MinimumVersion)
		d.out.Hint("upgrade git to use git-review with Gerrit")
		return
	}
	d.out.OKf("git %s found at %s", v, path)
}

func (d *Doctor) checkGitIdentity(ctx context.Context, key, placeholder string) {
	value := d.git.Get(ctx, key)
	if value == "" {
		d.out.Warnf("the git %s is not set. Add it using:-", key)
		d.out.Hintf("git config --global %s %s", key, placeholder)
		return
	}
	d.out.OKf("the git %s is set to %s", key, value)
}

func (d *Doctor) checkAutoCRLF(ctx context.Context) {
	value := d.git.Get(ctx, gitconfig.KeyAutoCRLF)
	expected, known := d.family.ExpectedAutoCRLF()

	switch {
	case !known:
		d.out.Warnf("the git core.autocrlf is set to '%s' but the line ending convention for this platform is unknown", value)
	case value == expected:
		d.out.OKf("the git core.autocrlf is set to '%s' which is correct for %s systems", value, d.family)
	case value == "input" || value == "true":
		d.out.Warnf("the git core.autocrlf is set to '%s' but %s should use '%s' to prevent line ending problems",
			value, d.family, expected)
	default:
		d.out.Warnf("the git core.autocrlf is set to '%s'", value)
		d.out.Hint("the git core.autocrlf should be set to 'input' (on OSX or Linux) or 'true' (on Windows) to prevent line ending problems")
	}
}

func (d *Doctor) checkGerritRemote(ctx context.Context) {
	value := d.git.Get(ctx, gitconfig.KeyGerritURL)
	if value == "" {
		d.out.Warn("we don't seem to have a git remote called gerrit.")
		d.out.Hint("If we are in a project folder, check you have a valid .gitreview file and try running:-")
		d.out.Hint("git review -s")
		return
	}
	d.out.OKf("the git remote for gerrit is set to %s", value)
}
