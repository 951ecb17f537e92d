package cli

// Options are the global flags and commands of the portal binary.
type Options struct {
	Config  string `short:"c" long:"config" description:"options file URL (YAML, any afs scheme)"`
	BaseURL string `short:"u" long:"base-url" description:"portal API root"`
	Verbose bool   `short:"v" long:"verbose" description:"debug logging"`

	Login   LoginCommand   `command:"login" description:"sign in and store credentials"`
	Logout  LogoutCommand  `command:"logout" description:"sign out and clear credentials"`
	Whoami  WhoamiCommand  `command:"whoami" description:"print the signed-in user"`
	Status  StatusCommand  `command:"status" description:"print configuration and credential state"`
	Get     GetCommand     `command:"get" description:"GET an API path with the stored credentials"`
	Version VersionCommand `command:"version" description:"print version"`
}

type LoginCommand struct {
	Identifier string `short:"i" long:"identifier" description:"email or login id" required:"true"`
	Password   string `short:"p" long:"password" env:"PORTAL_PASSWORD" description:"password" required:"true"`
	Account    string `short:"a" long:"account" description:"account id for identifiers with several accounts"`
	service    *Service
}

type LogoutCommand struct {
	PushToken string `long:"push-token" description:"push token to unregister"`
	service   *Service
}

type WhoamiCommand struct {
	service *Service
}

type StatusCommand struct {
	service *Service
}

type GetCommand struct {
	Args struct {
		Path string `positional-arg-name:"path" description:"API path, e.g. user/profile"`
	} `positional-args:"yes" required:"yes"`
	service *Service
}

type VersionCommand struct {
	service *Service
}
