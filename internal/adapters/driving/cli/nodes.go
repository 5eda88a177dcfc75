package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
)

var nodesType string

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "Browse stored nodes",
	Long:  `List stored nodes by type, show a node, or walk category hierarchies.`,
}

var nodesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List nodes of a type",
	Args:  cobra.NoArgs,
	RunE:  runNodesList,
}

var nodesShowCmd = &cobra.Command{
	Use:   "show [node-id]",
	Short: "Print a node as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runNodesShow,
}

var nodesChildrenCmd = &cobra.Command{
	Use:   "children [node-id]",
	Short: "List the children of a node",
	Args:  cobra.ExactArgs(1),
	RunE:  runNodesChildren,
}

var nodesParentCmd = &cobra.Command{
	Use:   "parent [node-id]",
	Short: "Show the parent of a node",
	Args:  cobra.ExactArgs(1),
	RunE:  runNodesParent,
}

func init() {
	nodesListCmd.Flags().StringVarP(&nodesType, "type", "t", "wcProducts", "Node type, e.g. wcProductsCategories")

	nodesCmd.AddCommand(nodesListCmd)
	nodesCmd.AddCommand(nodesShowCmd)
	nodesCmd.AddCommand(nodesChildrenCmd)
	nodesCmd.AddCommand(nodesParentCmd)
	rootCmd.AddCommand(nodesCmd)
}

func nodeService() error {
	if services == nil || services.Nodes == nil {
		return errors.New("node service not configured")
	}
	return nil
}

func runNodesList(cmd *cobra.Command, _ []string) error {
	if err := nodeService(); err != nil {
		return err
	}

	nodes, err := services.Nodes.List(context.Background(), nodesType)
	if err != nil {
		return fmt.Errorf("failed to list nodes: %w", err)
	}

	if len(nodes) == 0 {
		cmd.Printf("No %s nodes found\n", nodesType)
		return nil
	}

	printNodes(cmd, nodes)
	cmd.Printf("\nTotal: %d nodes\n", len(nodes))
	return nil
}

func runNodesShow(cmd *cobra.Command, args []string) error {
	if err := nodeService(); err != nil {
		return err
	}

	node, err := services.Nodes.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get node: %w", err)
	}

	out, err := json.MarshalIndent(node, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode node: %w", err)
	}
	cmd.Println(string(out))
	return nil
}

func runNodesChildren(cmd *cobra.Command, args []string) error {
	if err := nodeService(); err != nil {
		return err
	}

	children, err := services.Nodes.Children(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list children: %w", err)
	}

	if len(children) == 0 {
		cmd.Printf("Node %s has no children\n", args[0])
		return nil
	}

	printNodes(cmd, children)
	return nil
}

func runNodesParent(cmd *cobra.Command, args []string) error {
	if err := nodeService(); err != nil {
		return err
	}

	ctx := context.Background()
	if _, err := services.Nodes.Get(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to get node: %w", err)
	}

	parent, err := services.Nodes.Parent(ctx, args[0])
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("Node %s has no parent\n", args[0])
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get parent: %w", err)
	}

	printNodes(cmd, []domain.Node{*parent})
	return nil
}

func printNodes(cmd *cobra.Command, nodes []domain.Node) {
	p := newPrinter(cmd.OutOrStdout())
	for i := range nodes {
		name, _ := domain.AsString(nodes[i].Fields["name"])
		cmd.Printf("  %-8d %s  %s\n", nodes[i].UpstreamID, nodes[i].ID, name)
		cmd.Printf("           %s\n", p.muted(nodes[i].Internal.Type+" "+shortDigest(nodes[i].Internal.ContentDigest)))
	}
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
