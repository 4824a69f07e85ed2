package vm

import (
	"fmt"

	"wisp/parser"
	"wisp/types"
)

// CompileError reports a malformed form detected during compilation
type CompileError struct {
	Position parser.Position
	Message  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error at line %d, column %d: %s", e.Position.Line, e.Position.Column, e.Message)
}

func compileErrf(node parser.Node, format string, args ...interface{}) error {
	return &CompileError{
		Position: node.Position(),
		Message:  fmt.Sprintf(format, args...),
	}
}

// binaryOps are the left-associative foldable operators
var binaryOps = map[string]OpCode{
	"+": OP_ADD,
	"-": OP_SUB,
	"*": OP_MUL,
	"/": OP_DIV,
	"%": OP_MOD,
}

// compareOps are the strictly two-operand comparisons
var compareOps = map[string]OpCode{
	"<":  OP_LT,
	"<=": OP_LE,
	"==": OP_EQ,
	"!=": OP_NE,
	">":  OP_GT,
	">=": OP_GE,
}

func isOperator(name string) bool {
	if _, ok := binaryOps[name]; ok {
		return true
	}
	_, ok := compareOps[name]
	return ok
}

// Compiler lowers one top-level S-expression into one CodeUnit in a single
// pass, with full control over operand-stack balance. The macro table is
// probed after all built-in special forms and operators but before the
// generic call fallback.
type Compiler struct {
	unit      *CodeUnit
	env       *Environment
	macros    *MacroTable
	constants map[string]int // constant pool dedup (type-tagged literal -> index)
	names     map[string]int // name table dedup
	locals    map[string]int // local slot mapping (params first)
}

// NewCompiler creates a compiler against a global environment and macro
// table; both are consulted but only the macro table is read at compile
// time (macro transformers run against the environment).
func NewCompiler(env *Environment, macros *MacroTable) *Compiler {
	return &Compiler{
		unit: &CodeUnit{
			Code: make([]byte, 0, 64),
		},
		env:       env,
		macros:    macros,
		constants: make(map[string]int),
		names:     make(map[string]int),
		locals:    make(map[string]int),
	}
}

// Compile transforms one top-level expression into a finished CodeUnit.
// The trailing OP_RETURN makes the last computed value the unit's result.
func (c *Compiler) Compile(node parser.Node) (*CodeUnit, error) {
	if err := c.compileTop(node); err != nil {
		return nil, err
	}
	c.emit(OP_RETURN)
	return c.unit, nil
}

// compileTop handles the def/defmacro forms, which are only meaningful as
// the outermost form: they decide the unit's kind, name, and parameters.
func (c *Compiler) compileTop(node parser.Node) error {
	if list, ok := node.(*parser.ListNode); ok && len(list.Elements) > 0 {
		if head, ok := list.Elements[0].(*parser.SymbolNode); ok {
			switch head.Name {
			case "def":
				return c.compileDef(list)
			case "defmacro":
				return c.compileDefmacro(list)
			}
		}
	}
	return c.compileNode(node)
}

// compileDef distinguishes the function form (def (name params...) body...)
// from the top-level assignment form (def name expr).
func (c *Compiler) compileDef(n *parser.ListNode) error {
	if len(n.Elements) < 3 {
		return compileErrf(n, "def requires a target and a body")
	}

	switch target := n.Elements[1].(type) {
	case *parser.ListNode:
		c.unit.Kind = UnitFunction
		if err := c.declareSignature(target); err != nil {
			return err
		}
		return c.compileBody(n.Elements[2:])

	case *parser.SymbolNode:
		// Assignment: the single value expression is compiled in the
		// outer scope; the host binds the evaluated result globally.
		if len(n.Elements) != 3 {
			return compileErrf(n, "def assignment takes exactly one value expression")
		}
		c.unit.Kind = UnitAssignment
		c.unit.Name = target.Name
		return c.compileNode(n.Elements[2])

	default:
		return compileErrf(n.Elements[1], "def target must be a symbol or a signature list")
	}
}

// compileDefmacro compiles like a function def but tags the unit for the
// macro table instead of the global environment.
func (c *Compiler) compileDefmacro(n *parser.ListNode) error {
	if len(n.Elements) < 3 {
		return compileErrf(n, "defmacro requires a signature and a body")
	}
	sig, ok := n.Elements[1].(*parser.ListNode)
	if !ok {
		return compileErrf(n.Elements[1], "defmacro requires a signature list")
	}
	c.unit.Kind = UnitMacro
	if err := c.declareSignature(sig); err != nil {
		return err
	}
	return c.compileBody(n.Elements[2:])
}

// declareSignature extracts the name and fixed-arity parameter list and
// seeds every parameter into the locals table.
func (c *Compiler) declareSignature(sig *parser.ListNode) error {
	if len(sig.Elements) == 0 {
		return compileErrf(sig, "signature requires a name")
	}
	name, ok := sig.Elements[0].(*parser.SymbolNode)
	if !ok {
		return compileErrf(sig.Elements[0], "signature name must be a symbol")
	}
	c.unit.Name = name.Name

	for _, p := range sig.Elements[1:] {
		param, ok := p.(*parser.SymbolNode)
		if !ok {
			return compileErrf(p, "parameter must be a symbol")
		}
		if _, dup := c.locals[param.Name]; dup {
			return compileErrf(p, "duplicate parameter %q", param.Name)
		}
		if _, err := c.declareLocal(param.Name); err != nil {
			return err
		}
		c.unit.Params = append(c.unit.Params, param.Name)
	}
	return nil
}

// compileBody compiles body expressions in sequence; all but the last are
// popped and the last one is the unit's result.
func (c *Compiler) compileBody(body []parser.Node) error {
	for i, expr := range body {
		if err := c.compileNode(expr); err != nil {
			return err
		}
		if i < len(body)-1 {
			c.emit(OP_POP)
		}
	}
	return nil
}

// compileNode dispatches compilation based on node type
func (c *Compiler) compileNode(node parser.Node) error {
	switch n := node.(type) {
	case *parser.ListNode:
		return c.compileList(n)
	case *parser.QuoteNode:
		// Quoting fully suppresses evaluation; nested unquote markers
		// are embedded as literal structure.
		return c.compileConstant(nodeToValue(n.X))
	case *parser.QuasiQuoteNode:
		return c.compileQuasiQuoted(n.X)
	case *parser.UnquoteNode:
		return compileErrf(n, "unquote outside of quasiquote")
	case *parser.SymbolNode:
		return c.compileVar(n)
	case *parser.DottedPathNode:
		return c.compileDottedPath(n)
	case *parser.IntLit:
		return c.compileConstant(types.NewInt(n.Val))
	case *parser.FloatLit:
		return c.compileConstant(types.NewFloat(n.Val))
	case *parser.StrLit:
		return c.compileConstant(types.NewStr(n.Val))
	default:
		return compileErrf(node, "cannot compile %T", node)
	}
}

// compileList dispatches a call form on its head symbol: special forms
// first, then operators, then macros, then the generic call fallback.
func (c *Compiler) compileList(n *parser.ListNode) error {
	if len(n.Elements) == 0 {
		return compileErrf(n, "empty call form")
	}

	if head, ok := n.Elements[0].(*parser.SymbolNode); ok {
		args := n.Elements[1:]
		switch head.Name {
		case "def", "defmacro":
			return compileErrf(n, "%s is only allowed at top level", head.Name)
		case "if":
			return c.compileIf(n, args)
		case "apply":
			return c.compileApply(n, args)
		case ".":
			return c.compileDotForm(n, args)
		case "import":
			return c.compileImport(n, args)
		case "yield":
			return c.compileYield(n, args)
		case "=":
			return c.compileAssign(n, args)
		case "while":
			return c.compileWhile(n, args)
		case "return":
			return c.compileReturn(n, args)
		case "quote":
			// Spelled-out alias for the ' reader prefix, so quote forms
			// produced as lists (macro results included) mean the same.
			if len(args) != 1 {
				return compileErrf(n, "quote takes exactly one expression")
			}
			return c.compileConstant(nodeToValue(args[0]))
		case "quasiquote":
			if len(args) != 1 {
				return compileErrf(n, "quasiquote takes exactly one expression")
			}
			return c.compileQuasiQuoted(args[0])
		case "unquote":
			return compileErrf(n, "unquote outside of quasiquote")
		}
		if isOperator(head.Name) {
			return c.compileOp(head, args)
		}
		if transformer, ok := c.macros.Lookup(head.Name); ok {
			return c.compileMacroCall(n, transformer, args)
		}
	}

	return c.compileCall(n)
}

// compileIf compiles the ternary form (if cond then else); both branches
// are required. Jump targets are back-patched once each branch is emitted.
func (c *Compiler) compileIf(n *parser.ListNode, args []parser.Node) error {
	if len(args) != 3 {
		return compileErrf(n, "if requires a condition, a then branch, and an else branch")
	}
	if err := c.compileNode(args[0]); err != nil {
		return err
	}
	elseJump := c.emitJump(OP_JUMP_IF_FALSE)

	if err := c.compileNode(args[1]); err != nil {
		return err
	}
	endJump := c.emitJump(OP_JUMP)

	c.patchJump(elseJump)
	if err := c.compileNode(args[2]); err != nil {
		return err
	}
	c.patchJump(endJump)
	return nil
}

// compileWhile loops over the condition and body; once the condition turns
// false the whole expression is worth the unit "nothing".
func (c *Compiler) compileWhile(n *parser.ListNode, args []parser.Node) error {
	if len(args) < 1 {
		return compileErrf(n, "while requires a condition")
	}

	loopStart := len(c.unit.Code)
	if err := c.compileNode(args[0]); err != nil {
		return err
	}
	exitJump := c.emitJump(OP_JUMP_IF_FALSE)

	for _, body := range args[1:] {
		if err := c.compileNode(body); err != nil {
			return err
		}
		c.emit(OP_POP)
	}
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emit(OP_NOTHING)
	return nil
}

// compileAssign handles both the single-target and the destructuring form
// of the assignment statement. The assigned value (or packed tuple) stays
// on the stack as the expression's own result.
func (c *Compiler) compileAssign(n *parser.ListNode, args []parser.Node) error {
	if len(args) != 2 {
		return compileErrf(n, "= requires a target and a value")
	}

	switch target := args[0].(type) {
	case *parser.SymbolNode:
		if err := c.compileNode(args[1]); err != nil {
			return err
		}
		c.emit(OP_DUP)
		return c.compileStore(target)

	case *parser.ListNode:
		values, ok := args[1].(*parser.ListNode)
		if !ok {
			return compileErrf(args[1], "destructuring assignment requires a list of value expressions")
		}
		if len(values.Elements) != len(target.Elements) {
			return compileErrf(n, "destructuring arity mismatch: %d targets, %d values",
				len(target.Elements), len(values.Elements))
		}
		targets := make([]*parser.SymbolNode, len(target.Elements))
		for i, t := range target.Elements {
			sym, ok := t.(*parser.SymbolNode)
			if !ok {
				return compileErrf(t, "destructuring target must be a symbol")
			}
			targets[i] = sym
		}

		for _, v := range values.Elements {
			if err := c.compileNode(v); err != nil {
				return err
			}
		}
		c.emit(OP_MAKE_LIST)
		c.emitByte(byte(len(targets)))
		c.emit(OP_DUP)
		c.emit(OP_UNPACK)
		c.emitByte(byte(len(targets)))
		for _, t := range targets {
			if err := c.compileStore(t); err != nil {
				return err
			}
		}
		return nil

	default:
		return compileErrf(args[0], "invalid assignment target")
	}
}

// compileStore emits a store for one assignment target. Inside a function
// or macro body the target is a local, declared on first assignment; at top
// level it is a global.
func (c *Compiler) compileStore(target *parser.SymbolNode) error {
	if c.unit.Kind == UnitFunction || c.unit.Kind == UnitMacro {
		idx, err := c.declareLocal(target.Name)
		if err != nil {
			return err
		}
		c.emit(OP_SET_LOCAL)
		c.emitByte(byte(idx))
		return nil
	}
	idx, err := c.addName(target.Name)
	if err != nil {
		return err
	}
	c.emit(OP_SET_GLOBAL)
	c.emitByte(byte(idx))
	return nil
}

// compileReturn performs an early function return. Anything compiled after
// it in the same body is unreachable at runtime; no dead-code elimination
// is attempted.
func (c *Compiler) compileReturn(n *parser.ListNode, args []parser.Node) error {
	if len(args) != 1 {
		return compileErrf(n, "return requires exactly one value")
	}
	if err := c.compileNode(args[0]); err != nil {
		return err
	}
	c.emit(OP_RETURN)
	return nil
}

// compileYield compiles its argument and marks the unit as a generator
func (c *Compiler) compileYield(n *parser.ListNode, args []parser.Node) error {
	if len(args) != 1 {
		return compileErrf(n, "yield requires exactly one value")
	}
	if err := c.compileNode(args[0]); err != nil {
		return err
	}
	c.emit(OP_YIELD)
	c.unit.IsGenerator = true
	return nil
}

// compileImport requests each named module from the host, always into the
// global environment. The form itself evaluates to nothing.
func (c *Compiler) compileImport(n *parser.ListNode, args []parser.Node) error {
	if len(args) == 0 {
		return compileErrf(n, "import requires at least one module name")
	}
	for _, arg := range args {
		sym, ok := arg.(*parser.SymbolNode)
		if !ok {
			return compileErrf(arg, "import requires module name symbols")
		}
		idx, err := c.addName(sym.Name)
		if err != nil {
			return err
		}
		c.emit(OP_IMPORT)
		c.emitByte(byte(idx))
	}
	c.emit(OP_NOTHING)
	return nil
}

// compileApply compiles a fully dynamic call: the argument list is built at
// runtime and spread over the callee.
func (c *Compiler) compileApply(n *parser.ListNode, args []parser.Node) error {
	if len(args) != 2 {
		return compileErrf(n, "apply requires a function and an argument list")
	}
	if err := c.compileNode(args[0]); err != nil {
		return err
	}
	if err := c.compileNode(args[1]); err != nil {
		return err
	}
	c.emit(OP_CALL_SPREAD)
	return nil
}

// compileDotForm compiles (. obj a b): the base variable reference followed
// by one attribute lookup per symbol, left to right.
func (c *Compiler) compileDotForm(n *parser.ListNode, args []parser.Node) error {
	if len(args) < 2 {
		return compileErrf(n, ". requires a base variable and at least one attribute")
	}
	base, ok := args[0].(*parser.SymbolNode)
	if !ok {
		return compileErrf(args[0], ". requires a base variable symbol")
	}
	if err := c.compileVar(base); err != nil {
		return err
	}
	for _, attr := range args[1:] {
		sym, ok := attr.(*parser.SymbolNode)
		if !ok {
			return compileErrf(attr, "attribute name must be a symbol")
		}
		if err := c.emitGetAttr(sym.Name); err != nil {
			return err
		}
	}
	return nil
}

// compileDottedPath compiles the a.b.c sugar produced by the atom
// classifier: equivalent to (. a b c).
func (c *Compiler) compileDottedPath(n *parser.DottedPathNode) error {
	for _, seg := range n.Segments {
		if seg == "" {
			return compileErrf(n, "malformed dotted path %q", n.String())
		}
	}
	if err := c.compileVar(&parser.SymbolNode{Pos: n.Pos, Name: n.Segments[0]}); err != nil {
		return err
	}
	for _, seg := range n.Segments[1:] {
		if err := c.emitGetAttr(seg); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) emitGetAttr(name string) error {
	idx, err := c.addName(name)
	if err != nil {
		return err
	}
	c.emit(OP_GET_ATTR)
	c.emitByte(byte(idx))
	return nil
}

// compileOp is the operator compiler: unary sign forms, left-associative
// binary folds, and strictly two-operand comparisons. A comparison with a
// single operand degenerates to the operand itself, as the fold path does
// for / and %; three or more comparison operands are rejected outright.
func (c *Compiler) compileOp(head *parser.SymbolNode, args []parser.Node) error {
	if len(args) == 0 {
		return compileErrf(head, "operator %s requires at least one operand", head.Name)
	}

	if len(args) == 1 {
		if err := c.compileNode(args[0]); err != nil {
			return err
		}
		switch head.Name {
		case "+":
			c.emit(OP_POS)
		case "-":
			c.emit(OP_NEG)
		}
		return nil
	}

	if op, ok := binaryOps[head.Name]; ok {
		if err := c.compileNode(args[0]); err != nil {
			return err
		}
		for _, arg := range args[1:] {
			if err := c.compileNode(arg); err != nil {
				return err
			}
			c.emit(op)
		}
		return nil
	}

	if len(args) != 2 {
		return compileErrf(head, "comparison %s takes exactly two operands", head.Name)
	}
	if err := c.compileNode(args[0]); err != nil {
		return err
	}
	if err := c.compileNode(args[1]); err != nil {
		return err
	}
	c.emit(compareOps[head.Name])
	return nil
}

// compileMacroCall runs the registered transformer against the unevaluated
// argument expressions and compiles the replacement in place of the
// original form. Expansion is a compile-time-only rewrite.
func (c *Compiler) compileMacroCall(n *parser.ListNode, transformer *Callable, args []parser.Node) error {
	if len(args) != transformer.Arity() {
		return compileErrf(n, "macro %s takes %d arguments (%d given)",
			transformer.Name, transformer.Arity(), len(args))
	}
	argVals := make([]types.Value, len(args))
	for i, arg := range args {
		argVals[i] = nodeToValue(arg)
	}

	result, err := New(c.env).CallValue(transformer, argVals)
	if err != nil {
		return compileErrf(n, "macro %s failed: %v", transformer.Name, err)
	}
	replacement, err := valueToNode(result)
	if err != nil {
		return compileErrf(n, "macro %s: %v", transformer.Name, err)
	}
	return c.compileNode(replacement)
}

// compileCall is the generic fallback: compile the head as a value, each
// argument left to right, then a fixed-arity call.
func (c *Compiler) compileCall(n *parser.ListNode) error {
	if err := c.compileNode(n.Elements[0]); err != nil {
		return err
	}
	args := n.Elements[1:]
	if len(args) > 255 {
		return compileErrf(n, "too many call arguments")
	}
	for _, arg := range args {
		if err := c.compileNode(arg); err != nil {
			return err
		}
	}
	c.emit(OP_CALL)
	c.emitByte(byte(len(args)))
	return nil
}

// compileVar resolves a bare symbol: a local read if it names a parameter
// or tracked local of the current unit, else a global read.
func (c *Compiler) compileVar(n *parser.SymbolNode) error {
	if idx, ok := c.locals[n.Name]; ok {
		c.emit(OP_GET_LOCAL)
		c.emitByte(byte(idx))
		return nil
	}
	idx, err := c.addName(n.Name)
	if err != nil {
		return err
	}
	c.emit(OP_GET_GLOBAL)
	c.emitByte(byte(idx))
	return nil
}

// compileQuasiQuoted rebuilds a quasiquoted expression: unquoted positions
// compile and evaluate normally, lists reconstruct themselves element by
// element at runtime, and everything else embeds as a constant.
func (c *Compiler) compileQuasiQuoted(node parser.Node) error {
	switch n := node.(type) {
	case *parser.UnquoteNode:
		return c.compileNode(n.X)
	case *parser.ListNode:
		// A two-element list headed by unquote is the spelled-out form of
		// the , prefix and splices the same way.
		if len(n.Elements) == 2 {
			if head, ok := n.Elements[0].(*parser.SymbolNode); ok && head.Name == "unquote" {
				return c.compileNode(n.Elements[1])
			}
		}
		if len(n.Elements) > 255 {
			return compileErrf(n, "quasiquoted list too long")
		}
		for _, e := range n.Elements {
			if err := c.compileQuasiQuoted(e); err != nil {
				return err
			}
		}
		c.emit(OP_MAKE_LIST)
		c.emitByte(byte(len(n.Elements)))
		return nil
	default:
		return c.compileConstant(nodeToValue(node))
	}
}

// emit adds an opcode to the instruction stream
func (c *Compiler) emit(op OpCode) int {
	pos := len(c.unit.Code)
	c.unit.Code = append(c.unit.Code, byte(op))
	return pos
}

// emitByte adds an operand byte
func (c *Compiler) emitByte(b byte) {
	c.unit.Code = append(c.unit.Code, b)
}

// emitShort adds a 2-byte operand (big-endian)
func (c *Compiler) emitShort(s uint16) {
	c.unit.Code = append(c.unit.Code, byte(s>>8), byte(s))
}

// emitJump emits a forward branch with a placeholder offset and returns the
// patch site.
func (c *Compiler) emitJump(op OpCode) int {
	c.emit(op)
	c.emitShort(0xFFFF)
	return len(c.unit.Code) - 2
}

// patchJump overwrites a pending branch to land at the current position
func (c *Compiler) patchJump(offset int) {
	jump := len(c.unit.Code) - offset - 2
	if jump > 0xFFFF {
		panic("jump too large")
	}
	c.unit.Code[offset] = byte(jump >> 8)
	c.unit.Code[offset+1] = byte(jump)
}

// emitLoop emits a backward branch to a known position
func (c *Compiler) emitLoop(start int) {
	c.emit(OP_LOOP)
	// After reading opcode + short, IP = len(code) + 2; we want
	// IP - offset = start.
	offset := len(c.unit.Code) + 2 - start
	c.emitShort(uint16(offset))
}

// compileConstant adds a value to the pool and emits a push
func (c *Compiler) compileConstant(v types.Value) error {
	idx, err := c.addConstant(v)
	if err != nil {
		return err
	}
	c.emit(OP_PUSH)
	c.emitByte(byte(idx))
	return nil
}

// addConstant adds a value to the constant pool, deduplicating by literal
// value.
func (c *Compiler) addConstant(v types.Value) (int, error) {
	key := fmt.Sprintf("%d:%s", v.Type(), v.String())
	if idx, ok := c.constants[key]; ok {
		return idx, nil
	}
	idx := len(c.unit.Constants)
	if idx > 255 {
		return 0, fmt.Errorf("too many constants in one unit")
	}
	c.unit.Constants = append(c.unit.Constants, v)
	c.constants[key] = idx
	return idx, nil
}

// addName adds a global/attribute symbol name to the name table
func (c *Compiler) addName(name string) (int, error) {
	if idx, ok := c.names[name]; ok {
		return idx, nil
	}
	idx := len(c.unit.Names)
	if idx > 255 {
		return 0, fmt.Errorf("too many names in one unit")
	}
	c.unit.Names = append(c.unit.Names, name)
	c.names[name] = idx
	return idx, nil
}

// declareLocal adds a local slot, reusing the slot if already tracked
func (c *Compiler) declareLocal(name string) (int, error) {
	if idx, ok := c.locals[name]; ok {
		return idx, nil
	}
	idx := len(c.unit.Locals)
	if idx > 255 {
		return 0, fmt.Errorf("too many locals in one unit")
	}
	c.unit.Locals = append(c.unit.Locals, name)
	c.locals[name] = idx
	return idx, nil
}
