package commands

// Name identifies a bot command
type Name string

// Commands understood by the bot
const (
	// System commands
	Help      Name = "help"
	Start     Name = "start"
	Status    Name = "status"
	Info      Name = "info"
	Bandwidth Name = "bandwidth"
	Restart   Name = "restart"

	// User management commands
	Create  Name = "create"
	List    Name = "list"
	Delete  Name = "delete"
	Extend  Name = "extend"
	Traffic Name = "traffic"
	Cleanup Name = "cleanup"
)

// All lists every command the bot understands
var All = []Name{
	Help,
	Start,
	Status,
	Info,
	Bandwidth,
	Restart,
	Create,
	List,
	Delete,
	Extend,
	Traffic,
	Cleanup,
}

var known = func() map[Name]struct{} {
	m := make(map[Name]struct{}, len(All))
	for _, name := range All {
		m[name] = struct{}{}
	}
	return m
}()

// Lookup reports whether token names a known command
func Lookup(token string) (Name, bool) {
	name := Name(token)
	_, ok := known[name]
	return name, ok
}
