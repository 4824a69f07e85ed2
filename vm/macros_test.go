package vm

import "testing"

func TestMacroExpansionReplacesForm(t *testing.T) {
	s := newSession()
	got := s.evalAll(t,
		"(defmacro (twice e) `(+ ,e ,e))",
		"(twice 21)",
	)
	if got.String() != "42" {
		t.Errorf("(twice 21) = %s, want 42", got.String())
	}
}

func TestMacroArgumentsArriveUnevaluated(t *testing.T) {
	s := newSession()
	got := s.evalAll(t,
		"(defmacro (quoted e) `(quote ,e))",
		"(quoted (+ 1 2))",
	)
	if got.String() != "(+ 1 2)" {
		t.Errorf("(quoted (+ 1 2)) = %s, want the unevaluated form", got.String())
	}
}

func TestMacroExpansionVisibleToNestedMacros(t *testing.T) {
	s := newSession()
	got := s.evalAll(t,
		"(defmacro (twice e) `(+ ,e ,e))",
		"(defmacro (quadruple e) `(twice (twice ,e)))",
		"(quadruple 3)",
	)
	if got.String() != "12" {
		t.Errorf("(quadruple 3) = %s, want 12", got.String())
	}
}

func TestMacroArityMismatchIsCompileError(t *testing.T) {
	s := newSession()
	s.eval(t, "(defmacro (twice e) `(+ ,e ,e))")
	_, err := s.run("(twice 1 2)")
	if err == nil {
		t.Fatal("(twice 1 2) succeeded, want error")
	}
	if _, ok := err.(*CompileError); !ok {
		t.Errorf("error type = %T, want *CompileError", err)
	}
}

func TestMacroNameNotInEnvironment(t *testing.T) {
	s := newSession()
	s.eval(t, "(defmacro (twice e) `(+ ,e ,e))")
	if _, ok := s.env.Get("twice"); ok {
		t.Error("macro name bound in the environment; it belongs to the macro table only")
	}
	if _, ok := s.macros.Lookup("twice"); !ok {
		t.Error("macro not registered in the table")
	}
}

func TestMacroShadowsCallCompilation(t *testing.T) {
	// Once registered, the macro intercepts the head symbol even if a
	// global function of the same name exists.
	s := newSession()
	s.eval(t, "(def (pick x) 0)")
	s.eval(t, "(defmacro (pick e) e)")
	got := s.eval(t, "(pick 42)")
	if got.String() != "42" {
		t.Errorf("(pick 42) = %s, want the macro expansion 42", got.String())
	}
}

func TestMacroBuildsControlFlow(t *testing.T) {
	s := newSession()
	got := s.evalAll(t,
		"(defmacro (unless c a b) `(if ,c ,b ,a))",
		`(unless 0 "taken" "skipped")`,
	)
	if got.String() != `"taken"` {
		t.Errorf("unless = %s, want \"taken\"", got.String())
	}
}

func TestMacroTransformerRuntimeErrorSurfacesAsCompileError(t *testing.T) {
	s := newSession()
	s.eval(t, "(defmacro (bad e) (+ 1 undefined-global))")
	_, err := s.run("(bad 1)")
	if err == nil {
		t.Fatal("(bad 1) succeeded, want error")
	}
	if _, ok := err.(*CompileError); !ok {
		t.Errorf("error type = %T, want *CompileError", err)
	}
}
