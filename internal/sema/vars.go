package sema

// VarTable maps variable names to types, keeping the order of first assignment.
type VarTable struct {
	names []string
	types map[string]Type
}

func NewVarTable() *VarTable {
	return &VarTable{types: make(map[string]Type)}
}

// Seed registers name as TypeUnknown unless it already exists.
func (v *VarTable) Seed(name string) {
	if _, ok := v.types[name]; ok {
		return
	}
	v.names = append(v.names, name)
	v.types[name] = TypeUnknown
}

// Lookup returns the type of name and whether it was ever declared.
func (v *VarTable) Lookup(name string) (Type, bool) {
	t, ok := v.types[name]
	return t, ok
}

// Set records t for a seeded name.
func (v *VarTable) Set(name string, t Type) {
	if _, ok := v.types[name]; !ok {
		v.names = append(v.names, name)
	}
	v.types[name] = t
}

// Names returns variable names in declaration order.
func (v *VarTable) Names() []string {
	return v.names
}

func (v *VarTable) Len() int { return len(v.names) }
