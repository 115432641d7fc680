package runner

import "github.com/projectdiscovery/gologger"

var banner = (`
               __  __
  ____  ____ _/ /_/ /____  _________  ____  ____________  ____  ___
 / __ \/ __ \/ __/ __/ _ \/ ___/ __ \/ __ \/ ___/ ___/ _ \/ __ \/ _ \
/ /_/ / /_/ / /_/ /_/  __/ /  / / / / /_/ (__  ) /__/  __/ /_/ /  __/
\____/\__,_/\__/\__/\___/_/  /_/ /_/\____/____/\___/\___/\____/\___/
`)

var version = "v0.0.1"

// showBanner is used to show the banner to the user
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
}
