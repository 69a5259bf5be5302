package schema

import "slices"

// grammar lists the child kinds each kind may contain.
var grammar = [KindTotal][]Kind{
	KindRoot: {KindSchema},
	KindSchema: {
		KindImport,
		KindInclude,
		KindAttributeGroup,
		KindSimpleType,
		KindComplexType,
		KindGroup,
		KindAttribute,
		KindElement,
	},
	KindElement: {
		KindSimpleType,
		KindComplexType,
	},
	KindAttribute: {
		KindSimpleType,
	},
	KindGroup: {
		KindSequence,
		KindChoice,
		KindAll,
	},
	KindAttributeGroup: {
		KindAttribute,
		KindAttributeGroup,
	},
	KindSequence: childListGrammar,
	KindChoice:   childListGrammar,
	KindAll: {
		KindElement,
	},
	KindSimpleType: {
		KindRestriction,
	},
	KindComplexType: {
		KindSimpleContent,
		KindComplexContent,
		KindAttribute,
		KindSequence,
		KindChoice,
		KindAll,
		KindAttributeGroup,
		KindGroup,
	},
	KindSimpleContent:  contentGrammar,
	KindComplexContent: contentGrammar,
	KindExtension:      derivationGrammar,
	KindRestriction:    append([]Kind{KindSimpleType}, derivationGrammar...),
}

var childListGrammar = []Kind{
	KindElement,
	KindGroup,
	KindSequence,
	KindChoice,
}

var contentGrammar = []Kind{
	KindExtension,
	KindRestriction,
}

var derivationGrammar = []Kind{
	KindAttribute,
	KindAttributeGroup,
	KindSequence,
	KindChoice,
	KindAll,
	KindGroup,
}

// MayContain returns the kinds permitted as direct children of k.
func (k Kind) MayContain() []Kind {
	if k < 0 || int(k) >= KindTotal {
		return nil
	}

	return slices.Clone(grammar[k])
}

// Allows reports whether child may appear directly inside k.
func (k Kind) Allows(child Kind) bool {
	if k < 0 || int(k) >= KindTotal {
		return false
	}

	return slices.Contains(grammar[k], child)
}
