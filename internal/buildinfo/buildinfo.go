package buildinfo

const Graffiti = "               _ _    _ _   \n ___  ___   __| | | _(_) |_ \n/ __|/ _ \\ / _` | |/ / | __|\n\\__ \\ (_) | (_| |   <| | |_ \n|___/\\___/ \\__,_|_|\\_\\_|\\__|\n\n"

var (
	BuildTag string = "v0.0.0"
	Name     string = "sodkit"
	Time     string = ""
)

type buildinfo struct{}

func (buildinfo) Tag() string {
	return BuildTag
}

func (buildinfo) Name() string {
	return Name
}

func (buildinfo) Time() string {
	return Time
}

var Info buildinfo
