package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"contactd/pkg/types"
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dirctl:", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// buildRootCmd constructs the Cobra command tree over the dynamic client.
func buildRootCmd() *cobra.Command {
	var (
		server  string
		objName string
	)
	root := &cobra.Command{
		Use:           "dirctl",
		Short:         "Client for the contactd dynamic dispatch surface",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&server, "server", envOr("CONTACTD_SERVER", "http://127.0.0.1:8080"), "Base URL of the contactd server")
	root.PersistentFlags().StringVar(&objName, "name", envOr("CONTACTD_DIRECTORY_NAME", "ContactDirectory"), "Logical name to resolve")

	newClient := func() *client {
		return &client{base: server, http: &http.Client{Timeout: 10 * time.Second}}
	}

	resolveCmd := &cobra.Command{
		Use:     "resolve [name]",
		Short:   "Resolve a logical name to an object ref",
		Example: "  dirctl resolve ContactDirectory",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := objName
			if len(args) == 1 {
				name = args[0]
			}
			ref, err := newClient().resolve(name)
			if err != nil {
				return err
			}
			fmt.Printf("%s -> %s\n", ref.Name, ref.Handle)
			return nil
		},
	}

	opsCmd := &cobra.Command{
		Use:   "ops",
		Short: "List the operations the resolved servant supports",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			ref, err := c.resolve(objName)
			if err != nil {
				return err
			}
			ops, err := c.operations(ref.Handle)
			if err != nil {
				return err
			}
			for _, op := range ops {
				fmt.Printf("%s/%d\n", op.Name, len(op.Params))
			}
			return nil
		},
	}

	invokeCmd := &cobra.Command{
		Use:   "invoke <op> [arg...]",
		Short: "Invoke an operation by name with typed arguments",
		Long: "Invoke resolves the logical name, then sends the operation plus arguments\n" +
			"to the servant. Plain arguments are sent as strings; an argument starting\n" +
			"with '{' is parsed as a full wire value ({\"type\":...,\"value\":...}).",
		Example: "  dirctl invoke lookupEmailFromName Bob\n" +
			"  dirctl invoke addContact Dave dave@example.com",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			ref, err := c.resolve(objName)
			if err != nil {
				return err
			}
			var vals []cty.Value
			for _, a := range args[1:] {
				v, err := parseArg(a)
				if err != nil {
					return err
				}
				vals = append(vals, v)
			}
			res, err := c.invoke(ref.Handle, args[0], vals)
			if err != nil {
				return err
			}
			out, err := ctyjson.Marshal(res, res.Type())
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	contactsCmd := &cobra.Command{
		Use:   "contacts",
		Short: "List directory entries via the typed surface",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp types.ContactsResponse
			if err := newClient().getJSON("/directory/contacts", &resp); err != nil {
				return err
			}
			for _, c := range resp.Contacts {
				fmt.Printf("%s\t%s\n", c.Name, c.Email)
			}
			return nil
		},
	}

	root.AddCommand(resolveCmd, opsCmd, invokeCmd, contactsCmd)
	return root
}
