package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/engine"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/logger"
)

const historyFileName = ".sci_ai_history"

func init() {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive conversation (/reset clears history, /exit quits)",
		Args:  cobra.NoArgs,
		RunE:  runChat,
	}
	RootCmd.AddCommand(cmd)
}

func historyPath() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, historyFileName)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	e, err := openEngine(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	hist := historyPath()
	if f, err := os.Open(hist); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		f, err := os.OpenFile(hist, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			logger.Log.WithError(err).Debug("chat history not saved")
			return
		}
		defer f.Close()
		line.WriteHistory(f)
	}()

	session := uuid.NewString()
	if !e.RemoteEnabled() {
		fmt.Println("(local mode: answers come from the built-in data only)")
	}

	for {
		input, err := line.Prompt("> ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		switch input {
		case "":
			continue
		case "/exit", "/quit":
			return nil
		case "/reset":
			e.Reset(session)
			fmt.Println("history cleared")
			continue
		}
		line.AppendHistory(input)

		r, err := e.Ask(ctx, session, input)
		if err != nil {
			if errors.Is(err, engine.ErrSuperseded) {
				continue
			}
			return err
		}
		if err := printReply(r); err != nil {
			return err
		}
		fmt.Println()
	}
}
