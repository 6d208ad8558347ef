package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/muliwe/go-fizzbuzz-classifier/internal/classifier"
	"github.com/muliwe/go-fizzbuzz-classifier/internal/config"
	"github.com/muliwe/go-fizzbuzz-classifier/internal/fizzbuzz"
	"github.com/muliwe/go-fizzbuzz-classifier/internal/server"
)

const appName = "fizzbuzz"

func rootCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Classify integers by divisibility by 3 and 5",
		Long: `fizzbuzz maps an integer to "fizzbuzz" when it is divisible by 3 and 5,
"fizz" when divisible by 3, "buzz" when divisible by 5, and to the number
itself otherwise. Zero and negative numbers follow the same rule.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)

	cmd.AddCommand(
		classifyCmd(),
		rangeCmd(),
		serveCmd(),
		versionCmd(),
	)
	return cmd
}

func classifyCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "classify N [N...]",
		Short: "Classify one or more integers",
		Long:  "Classify one or more integers. Put negative numbers after --, e.g. fizzbuzz classify -- -15",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Validate everything before printing anything
			inputs := make([]int, 0, len(args))
			for _, arg := range args {
				n, err := fizzbuzz.ParseInput(arg)
				if err != nil {
					return err
				}
				inputs = append(inputs, n)
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			defer w.Flush()

			if asJSON {
				clf := classifier.New(classifier.DefaultConfig())
				enc := json.NewEncoder(w)
				for _, n := range inputs {
					if err := enc.Encode(clf.Classify(n)); err != nil {
						return err
					}
				}
				return nil
			}

			for _, n := range inputs {
				if _, err := fmt.Fprintln(w, fizzbuzz.Classify(n)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print full classification records as JSON lines")
	return cmd
}

func rangeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "range FROM TO",
		Short: "Classify every integer from FROM to TO inclusive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := fizzbuzz.ParseRange(args[0], args[1])
			if err != nil {
				return err
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			defer w.Flush()

			if asJSON {
				batch, err := classifier.New(classifier.DefaultConfig()).ClassifyRange(from, to)
				if err != nil {
					return err
				}
				return json.NewEncoder(w).Encode(batch)
			}

			results, err := fizzbuzz.Series(from, to)
			if err != nil {
				return err
			}
			for _, r := range results {
				if _, err := fmt.Fprintln(w, r); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the batch with summary as JSON")
	return cmd
}

func serveCmd() *cobra.Command {
	var (
		configPath string
		envFile    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP classification service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			srv, err := server.New(cfg.ServerConfig())
			if err != nil {
				return err
			}
			return srv.Start()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before the config")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, server.Version)
		},
	}
}
