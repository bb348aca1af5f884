package dsl

import (
	"errors"
	"testing"

	"github.com/aretw0/graft/pkg/tree"
	"github.com/aretw0/graft/pkg/types"
)

type source struct{ op bool }

func TestTree_SimpleCommands(t *testing.T) {
	root, err := Tree(
		Literal[source]("say").
			Describe("broadcast a message").
			Then(Argument[source]("message", types.Greedy()).Executes(func(tree.Context[source]) (int, error) { return 1, nil })),
		Literal[source]("stop").
			Requires(func(s source) bool { return s.op }),
	)
	if err != nil {
		t.Fatalf("Tree() failed: %v", err)
	}

	say := root.Child("say")
	if say == nil {
		t.Fatal("expected 'say' under root")
	}
	if say.Description() != "broadcast a message" {
		t.Errorf("unexpected description %q", say.Description())
	}
	msg := say.Child("message")
	if msg == nil || msg.Kind() != tree.KindArgument {
		t.Fatalf("expected argument 'message', got %v", msg)
	}
	if msg.Command() == nil {
		t.Error("expected 'message' to be executable")
	}

	stop := root.Child("stop")
	if stop.CanUse(source{}) {
		t.Error("expected 'stop' to require an operator")
	}
	if !stop.CanUse(source{op: true}) {
		t.Error("expected operator to use 'stop'")
	}
}

func TestTree_Aliases(t *testing.T) {
	root, err := Tree(
		Literal[source]("teleport").
			Aliases("tp", "warp").
			Executes(func(tree.Context[source]) (int, error) { return 0, nil }).
			Then(Argument[source]("target", types.Word())),
	)
	if err != nil {
		t.Fatalf("Tree() failed: %v", err)
	}

	names := []string{}
	for _, c := range root.Children() {
		names = append(names, c.Name())
	}
	if len(names) != 3 || names[0] != "teleport" || names[1] != "tp" || names[2] != "warp" {
		t.Fatalf("unexpected children order: %v", names)
	}

	tp := root.Child("tp")
	if tp.Redirect() != root.Child("teleport") {
		t.Error("expected alias to redirect to the aliased node")
	}
	if tp.Command() == nil {
		t.Error("expected alias to share the command")
	}
	if !tp.IsLeaf() {
		t.Error("alias must not own children")
	}
}

func TestTree_RedirectPaths(t *testing.T) {
	root, err := Tree(
		Literal[source]("execute").Then(
			Literal[source]("run").RedirectTo(""),
			Literal[source]("as").Then(
				Argument[source]("who", types.Word()).RedirectTo("execute"),
			),
		),
		Literal[source]("again").RedirectTo("later"),
		Literal[source]("later"),
	)
	if err != nil {
		t.Fatalf("Tree() failed: %v", err)
	}

	execute := root.Child("execute")
	if execute.Child("run").Redirect() != root {
		t.Error("expected empty path to resolve to the root")
	}
	if got := execute.Child("as").Child("who").Redirect(); got != execute {
		t.Errorf("expected redirect to 'execute', got %v", got)
	}
	if root.Child("again").Redirect() != root.Child("later") {
		t.Error("expected forward path to resolve")
	}
}

func TestTree_UnknownPath(t *testing.T) {
	_, err := Tree(Literal[source]("a").RedirectTo("b c"))
	if !errors.Is(err, ErrUnknownPath) {
		t.Fatalf("expected ErrUnknownPath, got %v", err)
	}
}

func TestTree_DuplicateNames(t *testing.T) {
	_, err := Tree(Literal[source]("a"), Literal[source]("b").Aliases("a"))
	var dup *tree.DuplicateNameError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateNameError, got %v", err)
	}
	if dup.Name != "a" {
		t.Errorf("expected duplicate 'a', got %q", dup.Name)
	}
}

func TestBuild_ArgumentWithoutType(t *testing.T) {
	_, err := Argument[source]("x", nil).Build()
	if !errors.Is(err, tree.ErrMissingType) {
		t.Fatalf("expected ErrMissingType, got %v", err)
	}
}

func TestBuild_PathRedirectNeedsTree(t *testing.T) {
	_, err := Literal[source]("a").RedirectTo("").Build()
	if !errors.Is(err, ErrUnknownPath) {
		t.Fatalf("expected ErrUnknownPath, got %v", err)
	}
}
