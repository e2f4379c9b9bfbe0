package ast

// Walk traverses the AST starting from node, calling fn for each node.
// If fn returns false, Walk stops traversing that branch.
func Walk(node Node, fn func(Node) bool) {
	if !fn(node) {
		return
	}

	switch n := node.(type) {
	case *FunctionDeclaration:
		for _, param := range n.Params {
			Walk(param, fn)
		}
		if n.ReturnTerm.Type != nil {
			Walk(n.ReturnTerm.Type, fn)
		}
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *ClassDeclaration:
		for _, member := range n.Members {
			Walk(member, fn)
		}

	case *ChoiceDeclaration:
		for _, alt := range n.Alternatives {
			if alt.Signature != nil {
				Walk(alt.Signature, fn)
			}
		}

	case *VariableDeclaration:
		if n.Binding != nil {
			Walk(n.Binding, fn)
		}
		if n.Init != nil {
			Walk(n.Init, fn)
		}

	case *Return:
		if n.Expression != nil {
			Walk(n.Expression, fn)
		}

	case *Break, *Continue, *Await:
		// No children to traverse

	case *If:
		if n.Condition != nil {
			Walk(n.Condition, fn)
		}
		if n.Then != nil {
			Walk(n.Then, fn)
		}
		if n.Else != nil {
			Walk(n.Else, fn)
		}

	case *Block:
		for _, stmt := range n.Statements {
			Walk(stmt, fn)
		}

	case *While:
		if n.Condition != nil {
			Walk(n.Condition, fn)
		}
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *Match:
		if n.Expression != nil {
			Walk(n.Expression, fn)
		}
		for _, clause := range n.Clauses {
			Walk(clause, fn)
		}

	case *MatchClause:
		if n.Pattern != nil {
			Walk(n.Pattern, fn)
		}
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *Continuation:
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *ExpressionStatement:
		if n.Expression != nil {
			Walk(n.Expression, fn)
		}

	case *Assign:
		if n.LHS != nil {
			Walk(n.LHS, fn)
		}
		if n.RHS != nil {
			Walk(n.RHS, fn)
		}

	case *VariableDefinition:
		if n.Pattern != nil {
			Walk(n.Pattern, fn)
		}
		if n.Init != nil {
			Walk(n.Init, fn)
		}

	case *Run:
		if n.Argument != nil {
			Walk(n.Argument, fn)
		}

	case *BindingPattern:
		if n.Type != nil {
			Walk(n.Type, fn)
		}

	case *ExpressionPattern:
		if n.Expression != nil {
			Walk(n.Expression, fn)
		}

	case *TupleLiteral:
		for _, elem := range n.Elements {
			Walk(elem, fn)
		}

	case *Call:
		if n.Callee != nil {
			Walk(n.Callee, fn)
		}
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *Identifier, *IntLiteral, *BoolLiteral:
		// Leaf nodes
	}
}

// Inspect walks every declaration of the compilation unit in order.
func Inspect(tree *AST, fn func(Node) bool) {
	for _, decl := range tree.Declarations {
		Walk(decl, fn)
	}
}
