package doctor

import (
	"github.com/knife-kitchen/kitchen/internal/berkshelf"
	"github.com/knife-kitchen/kitchen/internal/config"
)

// CheckBerkshelf cross-checks the Berkshelf config against the knife settings.
func (d *Doctor) CheckBerkshelf() {
	d.out.Header("Check berkshelf")
	if !d.checkPath("Berkshelf Config", d.berkshelfPath) {
		d.out.Hint("You dont have a Berkshelf config. Try running 'berks config'")
		return
	}

	cfg, issues, err := berkshelf.Load(d.berkshelfPath)
	if err != nil {
		d.out.Warnf("Berkshelf config cannot be parsed: %v", err)
		return
	}
	for _, issue := range issues {
		d.out.Warnf("Berkshelf config %s", issue)
	}

	if cfg.VerifyDisabled() {
		d.out.OK("SSL verify is turned off")
	} else {
		d.out.Warnf("SSL verify is '%s'... you should set it to 'false' to allow connecting to Chef server", cfg.VerifyString())
	}

	if cfg.Chef.ChefServerURL != "" && cfg.Chef.ChefServerURL == d.settings.ChefServerURL {
		d.out.OKf("Berkshelf chef_server_url is '%s'", cfg.Chef.ChefServerURL)
	} else {
		d.out.Warnf("Berkshelf chef_server_url does not match knife config. It's set to '%s'", cfg.Chef.ChefServerURL)
	}

	d.compareKeyPath("validation_key_path", cfg.Chef.ValidationKeyPath, d.settings.ValidationKey)
	d.compareKeyPath("client_key", cfg.Chef.ClientKey, d.settings.ClientKey)

	d.out.Println("Done !!!")
}

func (d *Doctor) compareKeyPath(field, berksValue, knifeValue string) {
	if samePath(berksValue, knifeValue) {
		d.out.OKf("Berkshelf %s is '%s'", field, berksValue)
		return
	}
	d.out.Warnf("Berkshelf %s does not match knife config. It's set to '%s'", field, berksValue)
}

// samePath compares two paths after expanding "~" and making them absolute.
// Empty paths never match.
func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return config.ExpandPath(a) == config.ExpandPath(b)
}
