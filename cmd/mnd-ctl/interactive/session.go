// Package interactive provides the interactive command-line interface
// for mnd-ctl.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/monado-tools/libmonado-go/pkg/inspect"
	"github.com/monado-tools/libmonado-go/pkg/monado"
)

// Session handles interactive mode for mnd-ctl.
type Session struct {
	ref       monado.Ref
	inspector *inspect.Inspector
	formatter *inspect.Formatter
	format    inspect.Format
}

// New creates a session over the given connection.
func New(ref monado.Ref) *Session {
	return &Session{
		ref:       ref,
		inspector: inspect.NewInspector(ref),
		formatter: inspect.NewFormatter(),
		format:    inspect.FormatText,
	}
}

// Run starts the interactive command loop. It returns when the user quits,
// input ends or ctx is canceled.
func (s *Session) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "monado> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	s.printHelp(rl.Stdout())

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(rl.Stdout(), "Exiting...")
			return nil
		}

		if !s.Execute(line, rl.Stdout()) {
			return nil
		}
	}
}

func completer() *readline.PrefixCompleter {
	spaces := make([]readline.PrefixCompleterInterface, 0, len(inspect.SpaceNames()))
	for _, name := range inspect.SpaceNames() {
		spaces = append(spaces, readline.PcItem(name))
	}
	roles := make([]readline.PrefixCompleterInterface, 0, len(inspect.RoleNames()))
	for _, name := range inspect.RoleNames() {
		roles = append(roles, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("dump"),
		readline.PcItem("show"),
		readline.PcItem("clients"),
		readline.PcItem("primary"),
		readline.PcItem("focus"),
		readline.PcItem("io"),
		readline.PcItem("recenter"),
		readline.PcItem("role", roles...),
		readline.PcItem("brightness"),
		readline.PcItem("space", spaces...),
		readline.PcItem("origin"),
		readline.PcItem("format", readline.PcItem("text"), readline.PcItem("json"), readline.PcItem("yaml")),
		readline.PcItem("quit"),
	)
}

// Execute runs one command line, writing output to w. It returns false
// when the session should end.
func (s *Session) Execute(line string, w io.Writer) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		s.printHelp(w)

	case "dump", "d":
		err = s.cmdDump(w)

	case "show", "s":
		err = s.cmdShow(w, args)

	case "clients", "ls":
		err = s.cmdClients(w)

	case "primary", "p":
		err = s.cmdClient(w, args, "primary")

	case "focus", "f":
		err = s.cmdClient(w, args, "focus")

	case "io", "i":
		err = s.cmdClient(w, args, "io")

	case "recenter":
		err = s.ref.Monado().RecenterLocalSpaces()
		if err == nil {
			fmt.Fprintln(w, "Recentered local spaces")
		}

	case "role":
		err = s.cmdRole(w, args)

	case "brightness", "b":
		err = s.cmdBrightness(w, args)

	case "space":
		err = s.cmdSpace(w, args)

	case "origin":
		err = s.cmdOrigin(w, args)

	case "format":
		err = s.cmdFormat(w, args)

	case "quit", "exit", "q":
		fmt.Fprintln(w, "Exiting...")
		return false

	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	return true
}

func (s *Session) printHelp(w io.Writer) {
	fmt.Fprintln(w, `
Monado Commands:
  Inspection:
    dump                         - Show everything the runtime reports
    show <target>                - Show one target (client/3, device/0, origin/0, space/stage, role/head)
    clients                      - List clients

  Clients:
    primary <id>                 - Make a client the primary application
    focus <id>                   - Give a client focus
    io <id>                      - Toggle a client's IO

  Devices:
    role <role>                  - Show the device bound to a role
    brightness <dev> [value]     - Show or set brightness (+x/-x is relative)

  Spaces:
    recenter                     - Recenter the local spaces
    space <name> [pose]          - Show or set a reference space offset
    origin <id> [pose]           - Show or set a tracking origin offset

  General:
    format <text|json|yaml>      - Set output format
    help                         - Show this help
    quit                         - Exit

  Pose Format:
    x,y,z or x,y,z,qx,qy,qz,qw - e.g., 0,1.2,0`)
}

func (s *Session) cmdDump(w io.Writer) error {
	snap, err := s.inspector.Snapshot()
	if err != nil {
		return err
	}
	return s.formatter.Write(w, snap, s.format)
}

func (s *Session) cmdShow(w io.Writer, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: show <target>")
	}
	target, err := inspect.ParseTarget(args[0])
	if err != nil {
		return err
	}
	v, err := s.inspector.Describe(target)
	if err != nil {
		return err
	}
	return s.formatter.Write(w, v, s.format)
}

func (s *Session) cmdClients(w io.Writer) error {
	clients, err := monado.ClientsOf(s.ref)
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		fmt.Fprintln(w, "No clients")
		return nil
	}
	for _, c := range clients {
		info := inspect.ClientInfo{ID: c.ID}
		if info.Name, err = c.Name(); err != nil {
			info.Error = err.Error()
		} else if state, err := c.State(); err != nil {
			info.Error = err.Error()
		} else {
			info.State = state.String()
		}
		fmt.Fprintln(w, s.formatter.FormatClient(info))
	}
	return nil
}

func (s *Session) cmdClient(w io.Writer, args []string, op string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s <client-id>", op)
	}
	target, err := inspect.ParseTarget("client/" + args[0])
	if err != nil {
		return err
	}
	c, err := s.inspector.Client(target.ID)
	if err != nil {
		return err
	}

	switch op {
	case "primary":
		err = c.SetPrimary()
	case "focus":
		err = c.SetFocused()
	case "io":
		err = c.ToggleIOActive()
	}
	if err != nil {
		return err
	}

	state, err := c.State()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Client %d: %s\n", c.ID, state)
	return nil
}

func (s *Session) cmdRole(w io.Writer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: role <%s>", strings.Join(inspect.RoleNames(), "|"))
	}
	return s.cmdShow(w, []string{"role/" + args[0]})
}

func (s *Session) cmdBrightness(w io.Writer, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: brightness <device> [value]")
	}
	target, err := inspect.ParseTarget("device/" + args[0])
	if err != nil {
		return err
	}
	d, err := s.inspector.Device(target.ID)
	if err != nil {
		return err
	}

	if len(args) == 2 {
		v, err := strconv.ParseFloat(args[1], 32)
		if err != nil {
			return fmt.Errorf("invalid brightness %q", args[1])
		}
		relative := strings.HasPrefix(args[1], "+") || strings.HasPrefix(args[1], "-")
		if err := d.SetBrightness(float32(v), relative); err != nil {
			return err
		}
	}

	b, err := d.Brightness()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Device %d brightness: %.2f\n", d.Index, b)
	return nil
}

func (s *Session) cmdSpace(w io.Writer, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: space <name> [pose]")
	}
	if len(args) == 2 {
		space, ok := inspect.ResolveSpaceName(args[0])
		if !ok {
			return fmt.Errorf("unknown space %q", args[0])
		}
		pose, err := inspect.ParsePose(args[1])
		if err != nil {
			return err
		}
		if err := s.ref.Monado().SetReferenceSpaceOffset(space, pose); err != nil {
			return err
		}
	}
	return s.cmdShow(w, []string{"space/" + args[0]})
}

func (s *Session) cmdOrigin(w io.Writer, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: origin <id> [pose]")
	}
	if len(args) == 2 {
		target, err := inspect.ParseTarget("origin/" + args[0])
		if err != nil {
			return err
		}
		pose, err := inspect.ParsePose(args[1])
		if err != nil {
			return err
		}
		o, err := s.inspector.Origin(target.ID)
		if err != nil {
			return err
		}
		if err := o.SetOffset(pose); err != nil {
			return err
		}
	}
	return s.cmdShow(w, []string{"origin/" + args[0]})
}

func (s *Session) cmdFormat(w io.Writer, args []string) error {
	if len(args) != 1 {
		fmt.Fprintf(w, "Format: %s\n", s.format)
		return nil
	}
	f, err := inspect.ParseFormat(args[0])
	if err != nil {
		return err
	}
	s.format = f
	fmt.Fprintf(w, "Format: %s\n", f)
	return nil
}
