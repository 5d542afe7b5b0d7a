package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/thebartekbanach/pictech/pkg/pictech"
	"github.com/thebartekbanach/pictech/pkg/task"
)

type runFunc func(cmd *cobra.Command, app *application, args []string) error

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "pictech",
		Short:        "Client for the signed image translation and processing api",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			if err := loadEnvFile(envFile, cmd.Flags().Changed("env-file")); err != nil {
				return err
			}

			if level, _ := cmd.Flags().GetString("log-level"); level != "" {
				os.Setenv("PICTECH_LOG_LEVEL", level)
			}

			return nil
		},
	}

	root.PersistentFlags().String("env-file", ".env", "File with environment variables to load")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(
		newTranslateCommand(),
		newQueryCommand(),
		newResumeCommand(),
		newRemoveBackgroundCommand(),
		newInpaintCommand(),
		newStoreCommand(),
		newAssetsCommand(),
	)

	return root
}

func newTranslateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Submit an image translation task",
		Args:  cobra.NoArgs,
		RunE: withApplication(func(cmd *cobra.Command, app *application, args []string) error {
			source := imageSourceFromFlags(cmd)
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")

			if wait, _ := cmd.Flags().GetBool("wait"); wait {
				result, err := app.service.Translate(cmd.Context(), source, from, to)
				return printResult(cmd, result, err)
			}

			handle, err := app.service.SubmitTranslation(cmd.Context(), source, from, to)
			if err != nil {
				return err
			}

			return printJSON(cmd, handle)
		}),
	}

	addImageSourceFlags(cmd)
	cmd.Flags().String("from", "", "Source language")
	cmd.Flags().String("to", "", "Target language")
	cmd.Flags().Bool("wait", false, "Poll until the translated image is ready")

	return cmd
}

func newQueryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "query <requestId>",
		Short: "Query the translation task once",
		Args:  cobra.ExactArgs(1),
		RunE: withApplication(func(cmd *cobra.Command, app *application, args []string) error {
			result, err := app.service.QueryTranslation(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printJSON(cmd, result)
		}),
	}
}

func newResumeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resume <translation|remove-background> <requestId>",
		Short: "Poll a previously submitted task until it finishes",
		Args:  cobra.ExactArgs(2),
		RunE: withApplication(func(cmd *cobra.Command, app *application, args []string) error {
			kind, err := task.KindByName(args[0])
			if err != nil {
				return err
			}

			result, err := app.service.Resume(cmd.Context(), kind, args[1])
			return printResult(cmd, result, err)
		}),
	}
}

func newRemoveBackgroundCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-bg",
		Short: "Remove the image background and store the result",
		Args:  cobra.NoArgs,
		RunE: withApplication(func(cmd *cobra.Command, app *application, args []string) error {
			backgroundColor, _ := cmd.Flags().GetString("bg-color")
			outputName, _ := cmd.Flags().GetString("output-name")

			result, err := app.service.RemoveBackground(cmd.Context(), imageSourceFromFlags(cmd), backgroundColor, outputName)
			if printErr := printJSON(cmd, result); printErr != nil {
				return printErr
			}

			return err
		}),
	}

	addImageSourceFlags(cmd)
	cmd.Flags().String("bg-color", pictech.DefaultBackgroundColor, "Background color of the output image")
	cmd.Flags().String("output-name", "", "Name of the stored output, generated when empty")

	return cmd
}

func newInpaintCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inpaint",
		Short: "Inpaint the masked area of an image",
		Args:  cobra.NoArgs,
		RunE: withApplication(func(cmd *cobra.Command, app *application, args []string) error {
			image, err := readBase64Flag(cmd, app.fs, "image")
			if err != nil {
				return err
			}

			mask, err := readBase64Flag(cmd, app.fs, "mask")
			if err != nil {
				return err
			}

			output, _ := cmd.Flags().GetString("output")
			store, _ := cmd.Flags().GetBool("store")

			var result pictech.InpaintResult
			if store {
				outputName, _ := cmd.Flags().GetString("output-name")
				result, err = app.service.InpaintAndStore(cmd.Context(), image, mask, outputName)
			} else {
				result, err = app.service.Inpaint(cmd.Context(), image, mask)
			}
			if err != nil && result.Data == nil {
				return err
			}

			if writeErr := afero.WriteFile(app.fs, output, result.Data, 0o644); writeErr != nil {
				return writeErr
			}
			app.logger.Info("inpainted image written", "output", output)

			if printErr := printJSON(cmd, map[string]interface{}{
				"output":   output,
				"mimeType": result.MimeType,
				"size":     len(result.Data),
				"asset":    result.Asset,
			}); printErr != nil {
				return printErr
			}

			return err
		}),
	}

	cmd.Flags().String("image", "", "Base64 encoded image")
	cmd.Flags().String("image-path", "", "Path of the image")
	cmd.Flags().String("mask", "", "Base64 encoded mask")
	cmd.Flags().String("mask-path", "", "Path of the mask")
	cmd.Flags().String("output", "inpainted.png", "Path the inpainted image is written to")
	cmd.Flags().Bool("store", false, "Also keep the inpainted image in the asset storage")
	cmd.Flags().String("output-name", "", "Name of the stored output, generated when empty")

	return cmd
}

func newStoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Keep an image in the asset storage",
		Args:  cobra.NoArgs,
		RunE: withApplication(func(cmd *cobra.Command, app *application, args []string) error {
			image, err := readBase64Flag(cmd, app.fs, "image")
			if err != nil {
				return err
			}

			requestID, _ := cmd.Flags().GetString("request-id")
			name, _ := cmd.Flags().GetString("name")

			asset, err := app.service.StoreImage(cmd.Context(), requestID, image, name)
			if err != nil {
				return err
			}

			return printJSON(cmd, asset)
		}),
	}

	cmd.Flags().String("image", "", "Base64 encoded image, a data url header is allowed")
	cmd.Flags().String("image-path", "", "Path of the image")
	cmd.Flags().String("request-id", "", "Task the image belongs to")
	cmd.Flags().String("name", "", "Name of the stored image, generated when empty")

	return cmd
}

func newAssetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "assets <requestId>",
		Short: "List assets stored for a task",
		Args:  cobra.ExactArgs(1),
		RunE: withApplication(func(cmd *cobra.Command, app *application, args []string) error {
			infos, err := app.service.AssetsOfTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printJSON(cmd, infos)
		}),
	}
}

func withApplication(run runFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := InitializeApplication(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		return run(cmd, app, args)
	}
}

func addImageSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("url", "", "Url of the image")
	cmd.Flags().String("base64", "", "Base64 encoded image")
	cmd.Flags().String("path", "", "Path of the image")
}

func imageSourceFromFlags(cmd *cobra.Command) pictech.ImageSource {
	url, _ := cmd.Flags().GetString("url")
	data, _ := cmd.Flags().GetString("base64")
	path, _ := cmd.Flags().GetString("path")

	return pictech.ImageSource{URL: url, Base64: data, Path: path}
}

// readBase64Flag returns the inline value of name or the encoded content of
// the file given by name-path.
func readBase64Flag(cmd *cobra.Command, fs afero.Fs, name string) (string, error) {
	if value, _ := cmd.Flags().GetString(name); value != "" {
		return value, nil
	}

	path, _ := cmd.Flags().GetString(name + "-path")
	if path == "" {
		return "", nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}

	return base64.StdEncoding.EncodeToString(data), nil
}

// printResult prints the flow result also when the flow failed, so the
// request id stays visible for a later resume.
func printResult(cmd *cobra.Command, result task.Result, err error) error {
	if printErr := printJSON(cmd, result); printErr != nil {
		return printErr
	}

	return err
}

func printJSON(cmd *cobra.Command, value interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("loading env file %s: %w", path, err)
	}

	return nil
}
