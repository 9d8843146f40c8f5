package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/gregLibert/capdu/internal/tool"
	"gopkg.in/urfave/cli.v1"
)

var (
	describeFlag = cli.BoolFlag{
		Name:  "describe, d",
		Usage: "print the command report after the encoding",
	}
	claFlag = cli.StringFlag{
		Name:  "cla",
		Value: "00",
		Usage: "class byte in hex",
	}
)

var decodeCommand = cli.Command{
	Action:    decodeCmd,
	Name:      "decode",
	Usage:     "decodes hex command APDUs (from arguments or stdin, one per line)",
	ArgsUsage: "[<apdu>...]",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "format, f",
			Value: string(tool.FormatText),
			Usage: "output format: text or json",
		},
	},
}

var encodeCommand = cli.Command{
	Action: encodeCmd,
	Name:   "encode",
	Usage:  "encodes a command APDU from its fields",
	Flags: []cli.Flag{
		claFlag,
		cli.StringFlag{Name: "ins", Usage: "instruction byte in hex"},
		cli.StringFlag{Name: "p1", Value: "00", Usage: "parameter byte P1 in hex"},
		cli.StringFlag{Name: "p2", Value: "00", Usage: "parameter byte P2 in hex"},
		cli.StringFlag{Name: "data", Usage: "command data field in hex"},
		cli.IntFlag{Name: "ne", Usage: "expected response length (0 for no Le field, max 65536)"},
		describeFlag,
	},
}

var selectCommand = cli.Command{
	Action:    selectCmd,
	Name:      "select",
	Usage:     "builds a SELECT command by AID, or SELECT MF without argument",
	ArgsUsage: "[<aid>]",
	Flags:     []cli.Flag{claFlag, describeFlag},
}

var readRecordCommand = cli.Command{
	Action: readRecordCmd,
	Name:   "read-record",
	Usage:  "builds a READ RECORD command",
	Flags: []cli.Flag{
		claFlag,
		cli.IntFlag{Name: "sfi", Value: 1, Usage: "short file identifier (0-30)"},
		cli.IntFlag{Name: "record", Value: 1, Usage: "record number"},
		cli.BoolFlag{Name: "all", Usage: "read all records from --record onwards"},
		describeFlag,
	},
}

var verifyCommand = cli.Command{
	Action:    verifyCmd,
	Name:      "verify",
	Usage:     "checks a YAML file of reference command vectors",
	ArgsUsage: "<file>",
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "capdu"
	app.Usage = "decode and encode ISO/IEC 7816-4 command APDUs"
	app.Version = "0.1.0"
	app.Commands = []cli.Command{
		decodeCommand,
		encodeCommand,
		selectCommand,
		readRecordCommand,
		verifyCommand,
	}
	return app
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("capdu: ")

	if err := newApp().Run(os.Args); err != nil {
		if issue := fmsg.GetIssue(err); issue != "" {
			log.Printf("%s", issue)
		}
		log.Printf("Error: %v", err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for bad user input and 1 for anything else.
func exitCode(err error) int {
	if ftag.Get(err) == ftag.InvalidArgument {
		return 2
	}
	return 1
}

func usageError(err error) error {
	return fault.Wrap(err,
		ftag.With(ftag.InvalidArgument),
		fmsg.WithDesc("invalid usage", err.Error()),
	)
}

func decodeCmd(c *cli.Context) error {
	format, err := tool.ParseFormat(c.String("format"))
	if err != nil {
		return usageError(err)
	}

	inputs := []string(c.Args())
	if len(inputs) == 0 {
		if inputs, err = tool.ReadInputs(os.Stdin); err != nil {
			return err
		}
	}

	return tool.Decode(context.Background(), os.Stdout, inputs, format)
}

func encodeCmd(c *cli.Context) error {
	if !c.IsSet("ins") {
		return usageError(errors.New("--ins is required"))
	}

	return tool.Encode(context.Background(), os.Stdout, tool.EncodeParams{
		CLA:      c.String("cla"),
		INS:      c.String("ins"),
		P1:       c.String("p1"),
		P2:       c.String("p2"),
		Data:     c.String("data"),
		Ne:       c.Int("ne"),
		Describe: c.Bool("describe"),
	})
}

func selectCmd(c *cli.Context) error {
	return tool.Select(context.Background(), os.Stdout, c.String("cla"), c.Args().First(), c.Bool("describe"))
}

func readRecordCmd(c *cli.Context) error {
	return tool.ReadRecord(context.Background(), os.Stdout,
		c.String("cla"), c.Int("sfi"), c.Int("record"), c.Bool("all"), c.Bool("describe"))
}

func verifyCmd(c *cli.Context) error {
	if c.NArg() != 1 {
		return usageError(fmt.Errorf("verify takes exactly one vectors file, got %d arguments", c.NArg()))
	}
	return tool.Verify(context.Background(), os.Stdout, c.Args().First())
}
