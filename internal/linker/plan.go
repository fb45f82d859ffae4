package linker

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/depstage-labs/depstage/internal/manifest"
)

// Node actions in a staging plan.
const (
	ActionLink   = "link"   // a symlink will be created
	ActionDedup  = "dedup"  // already planned earlier in this pass
	ActionNested = "nested" // resolved too deep, reachable via its parent
	ActionCycle  = "cycle"  // already on the recursion path, pruned
)

// PlanNode is one dependency in a staging plan tree.
type PlanNode struct {
	Name     string
	Dir      string // resolved package directory; empty for cycle nodes
	Target   string // relative link target; set only for ActionLink
	Action   string
	Children []*PlanNode
}

// PlanPass is the planned tree for one linking pass.
type PlanPass struct {
	Dir   string // package directory the pass is rooted at
	Nodes []*PlanNode
}

// Plan is the full dry-run result for a Setup: one pass for the target,
// then one per selected workspace member.
type Plan struct {
	Passes []PlanPass
}

// BuildPlan walks the same graph Setup would, serially and without
// touching the filesystem beyond reads, and records what each step would
// do. Resolution failures abort the plan exactly as they would a real run.
func (l *Linker) BuildPlan(ctx context.Context) (*Plan, error) {
	dirs := []string{l.ws.TargetDir}
	members, err := l.ws.SelectMembers()
	if err != nil {
		return nil, err
	}
	dirs = append(dirs, members...)

	plan := &Plan{}
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pass, err := l.planPass(dir)
		if err != nil {
			return nil, err
		}
		plan.Passes = append(plan.Passes, pass)
	}
	return plan, nil
}

func (l *Linker) planPass(pkgDir string) (PlanPass, error) {
	m, err := manifest.ReadDir(pkgDir, l.opts.ManifestName)
	if err != nil {
		return PlanPass{}, err
	}

	destDir := filepath.Join(pkgDir, l.opts.ModulesDir)
	planned := make(map[string]bool)

	pass := PlanPass{Dir: pkgDir}
	for _, dep := range m.DependencyNames() {
		node, err := l.planNode(dep, pkgDir, destDir, planned, nil)
		if err != nil {
			return PlanPass{}, err
		}
		pass.Nodes = append(pass.Nodes, node)
	}
	return pass, nil
}

func (l *Linker) planNode(name, fromDir, destDir string, planned map[string]bool, ancestry []string) (*PlanNode, error) {
	if slices.Contains(ancestry, name) {
		return &PlanNode{Name: name, Action: ActionCycle}, nil
	}

	resolved, err := l.resolver.Resolve(name, fromDir)
	if err != nil {
		return nil, err
	}

	node := &PlanNode{Name: name, Dir: resolved.Dir}
	switch {
	case resolved.Depth > 1:
		node.Action = ActionNested
	case planned[name]:
		node.Action = ActionDedup
	default:
		planned[name] = true
		linkPath := filepath.Join(destDir, filepath.FromSlash(name))
		target, err := filepath.Rel(filepath.Dir(linkPath), resolved.Dir)
		if err != nil {
			return nil, fmt.Errorf("computing relative target for %s: %w", name, err)
		}
		node.Action = ActionLink
		node.Target = target
	}

	m, err := manifest.Read(resolved.ManifestPath)
	if err != nil {
		return nil, err
	}

	childAncestry := append(slices.Clone(ancestry), name)
	for _, dep := range m.DependencyNames() {
		child, err := l.planNode(dep, resolved.Dir, destDir, planned, childAncestry)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

// PrintPlan renders the plan as annotated box-drawing trees, one per pass.
func PrintPlan(w io.Writer, plan *Plan) {
	for i, pass := range plan.Passes {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n", pass.Dir)
		if len(pass.Nodes) == 0 {
			fmt.Fprintln(w, "  (no dependencies)")
			continue
		}
		for j, node := range pass.Nodes {
			printNode(w, node, "  ", j == len(pass.Nodes)-1)
		}
	}
}

func printNode(w io.Writer, node *PlanNode, prefix string, isLast bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}

	label := node.Name
	switch node.Action {
	case ActionLink:
		label += " -> " + node.Target
	case ActionDedup:
		label += " (deduped)"
	case ActionNested:
		label += " (nested, no link)"
	case ActionCycle:
		label += " (cycle, pruned)"
	}
	fmt.Fprintf(w, "%s%s%s\n", prefix, connector, label)

	childPrefix := prefix
	if isLast {
		childPrefix += "    "
	} else {
		childPrefix += "│   "
	}
	for i, child := range node.Children {
		printNode(w, child, childPrefix, i == len(node.Children)-1)
	}
}
