package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/knightpaths/pkg/board"
	"github.com/matzehuels/knightpaths/pkg/config"
	errs "github.com/matzehuels/knightpaths/pkg/errors"
	"github.com/matzehuels/knightpaths/pkg/pipeline"
	"github.com/matzehuels/knightpaths/pkg/render/nodelink"
)

// renderFlags holds the output flags shared by find and pick.
type renderFlags struct {
	output     string
	formats    string
	engine     string
	startColor string
	endColor   string
	noRender   bool
	noCache    bool
	refresh    bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	def := config.Default()
	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", def.Output, "output base name (extension added per format)")
	fl.StringVarP(&f.formats, "format", "f", strings.Join(def.Formats, ","),
		"output formats, comma-separated: "+strings.Join(pipeline.FormatNames(), ", "))
	fl.StringVar(&f.engine, "engine", def.Engine, "Graphviz layout engine: dot, neato, fdp, circo, twopi")
	fl.StringVar(&f.startColor, "start-color", def.StartColor, "fill color of the start square")
	fl.StringVar(&f.endColor, "end-color", def.EndColor, "fill color of the end square")
	fl.BoolVar(&f.noRender, "no-render", false, "print paths without writing any files")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable the rendered image cache")
	fl.BoolVar(&f.refresh, "refresh", false, "re-render images even when cached")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return pipeline.FormatNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("engine", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{nodelink.EngineDot, nodelink.EngineNeato, nodelink.EngineFDP, nodelink.EngineCirco, nodelink.EngineTwopi},
			cobra.ShellCompDirectiveNoFileComp
	})
}

// applyConfig fills every flag the user did not set from the config file.
func (f *renderFlags) applyConfig(cmd *cobra.Command, cfg config.Config) {
	fl := cmd.Flags()
	if !fl.Changed("output") {
		f.output = cfg.Output
	}
	if !fl.Changed("format") {
		f.formats = strings.Join(cfg.Formats, ",")
	}
	if !fl.Changed("engine") {
		f.engine = cfg.Engine
	}
	if !fl.Changed("start-color") {
		f.startColor = cfg.StartColor
	}
	if !fl.Changed("end-color") {
		f.endColor = cfg.EndColor
	}
	if !fl.Changed("no-cache") {
		f.noCache = !cfg.Cache
	}
}

// options validates the flags and builds pipeline options.
func (f *renderFlags) options(start, end board.Position) (pipeline.Options, error) {
	opts := pipeline.Options{
		Start:      start.String(),
		End:        end.String(),
		Formats:    pipeline.ParseFormats(f.formats),
		Engine:     f.engine,
		StartColor: f.startColor,
		EndColor:   f.endColor,
		Refresh:    f.refresh,
	}
	if f.noRender {
		return opts, nil
	}
	if err := errs.ValidateOutputBase(f.output); err != nil {
		return opts, err
	}
	if len(opts.Formats) == 0 {
		return opts, errs.New(errs.ErrCodeInvalidInput, "no output format given")
	}
	return opts, opts.ValidateForRender()
}

// findCommand creates the find command.
func (c *CLI) findCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "find [start] [end]",
		Short: "List every shortest knight path and render the path graph",
		Long: `List every shortest knight path between two squares and render their union
as a graph image.

Squares use algebraic notation (a1 to h8, case-insensitive). Without
arguments, both squares are read from standard input.`,
		Example: `  knightpaths find a1 h8
  knightpaths find d4 f5 -f svg,json -o knight
  knightpaths find b1 g8 --engine circo --no-cache`,
		Args: zeroOrTwoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.applyConfig(cmd, c.Config)
			ctx := withLogger(cmd.Context(), c.Logger)
			out := cmd.OutOrStdout()

			startIn, endIn, err := c.squaresFromArgs(out, args)
			if err != nil {
				return err
			}
			start, end, err := parseSquares(out, startIn, endIn)
			if err != nil {
				return err
			}
			return c.runFind(ctx, cmd, start, end, &flags)
		},
	}

	flags.register(cmd)
	return cmd
}

// runFind searches, prints the paths and writes the requested files.
func (c *CLI) runFind(ctx context.Context, cmd *cobra.Command, start, end board.Position, flags *renderFlags) error {
	logger := loggerFromContext(ctx)
	out := cmd.OutOrStdout()

	opts, err := flags.options(start, end)
	if err != nil {
		return err
	}
	opts.Logger = logger

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	ps, err := runner.Search(ctx, opts)
	if err != nil {
		return err
	}
	printPaths(out, ps)
	if flags.noRender || ps.Empty() {
		return nil
	}

	prog := newProgress(logger)
	spinner := newSpinner(ctx, cmd.ErrOrStderr(), "Rendering path graph...")
	spinner.Start()
	result, err := runner.Render(ctx, ps, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			spinner.Stop()
		} else {
			spinner.StopWithError("Rendering failed")
		}
		return err
	}
	spinner.Stop()

	files, err := writeArtifacts(flags.output, opts.Formats, result.Artifacts)
	if err != nil {
		return err
	}

	printNewline(out)
	printSuccess(out, "Graph image generated successfully")
	for _, f := range files {
		printFile(out, f)
	}
	printStats(out, result.Stats.Moves, result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	prog.done(fmt.Sprintf("Wrote %d file(s)", len(files)))
	return nil
}

// =============================================================================
// Square Input
// =============================================================================

func zeroOrTwoArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 2 {
		return fmt.Errorf("accepts 0 or 2 squares, received %d", len(args))
	}
	return nil
}

// squaresFromArgs returns the two squares from args, prompting when none
// were given.
func (c *CLI) squaresFromArgs(w io.Writer, args []string) (string, string, error) {
	if len(args) == 2 {
		return args[0], args[1], nil
	}
	return c.promptSquares(w)
}

func (c *CLI) promptSquares(w io.Writer) (string, string, error) {
	r := bufio.NewReader(c.In)

	fmt.Fprintln(w, "Welcome to the Knight Path Finder!")
	fmt.Fprintln(w, "You will be asked to enter a starting and an ending position for the knight.")

	start, err := promptLine(r, w, "Enter the starting position (e.g., d4): ")
	if err != nil {
		return "", "", err
	}
	end, err := promptLine(r, w, "Enter the ending position (e.g., f5): ")
	if err != nil {
		return "", "", err
	}
	return start, end, nil
}

// promptLine prints label and reads one line. A final line without a
// newline is accepted.
func promptLine(r *bufio.Reader, w io.Writer, label string) (string, error) {
	fmt.Fprint(w, label)
	line, err := r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			return "", fmt.Errorf("read input: %w", io.ErrUnexpectedEOF)
		}
	}
	return strings.TrimSpace(line), nil
}

// parseSquares normalizes and parses both squares, reporting the first
// failure with its targeted message.
func parseSquares(w io.Writer, startIn, endIn string) (board.Position, board.Position, error) {
	start, err := board.ParseSquare(startIn)
	if err != nil {
		return board.Position{}, board.Position{}, reportInputError(w, err)
	}
	end, err := board.ParseSquare(endIn)
	if err != nil {
		return board.Position{}, board.Position{}, reportInputError(w, err)
	}
	return start, end, nil
}

// =============================================================================
// Input Errors
// =============================================================================

// reportedError marks an error whose message was already shown to the user.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported reports whether err was already printed by a command, so the
// caller only needs to set the exit status.
func Reported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// inputErrorMessage returns the user-facing message for a square parsing error.
func inputErrorMessage(err error) string {
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidFormat:
		return "Invalid format. Please enter coordinates in the format (e.g., d4)."
	case errs.ErrCodeInvalidSquare:
		return "Invalid coordinates entered. Use the format 'a1', 'h8', etc."
	case errs.ErrCodeOutOfBounds:
		return "Coordinates out of bounds. Please enter valid positions (e.g., a1, h8)."
	default:
		return errs.UserMessage(err)
	}
}

// reportInputError prints the targeted message for square parsing errors
// and marks them reported. Other errors pass through unchanged.
func reportInputError(w io.Writer, err error) error {
	if !errs.IsInputError(err) {
		return err
	}
	printError(w, "Error: %s", inputErrorMessage(err))
	return &reportedError{err: err}
}
