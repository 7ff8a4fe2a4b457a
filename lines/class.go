// TLINE: Treatment Line Derivation Library
// Copyright (c) 2022 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/tline/blob/master/LICENSE.txt>.

package lines

import (
	"fmt"
	"sort"
	"strings"
)

// Class identifies one of the canonical therapy classes a drug group belongs to. The declaration order is the
// canonical precedence order used when rendering class lists; Other and Unspecified sort last.
type Class int

const (
	ClassPDL1 Class = iota //PD-L1/PD-1 checkpoint inhibitors
	ClassChemo
	ClassTKI
	ClassAngiogenesis
	ClassPARP
	ClassHER2
	ClassIFN //IFN-alpha/IL-2
	ClassBCG
	ClassOther
	ClassUnspecified
	NofClasses //number of canonical therapy classes
)

// ClassSeparator joins multiple class names in rendered class lists.
const ClassSeparator = "+"

var classNames = [NofClasses]string{
	"PD-L1/PD-1",
	"Chemo",
	"TKI",
	"Angiogenesis-Inhibitor",
	"PARP",
	"HER-2",
	"IFN-alpha/IL-2",
	"BCG",
	"Other",
	"Unspecified",
}

func (c Class) String() string {
	if c < 0 || c >= NofClasses {
		return fmt.Sprintf("Class(%d)", int(c))
	}
	return classNames[c]
}

// ParseClass maps a therapy class name onto its Class value.
func ParseClass(s string) (Class, error) {
	for i, name := range classNames {
		if name == s {
			return Class(i), nil
		}
	}
	return ClassOther, fmt.Errorf("unknown therapy class %q", s)
}

// ParseClassList parses a ClassSeparator-joined list of therapy class names. An empty string yields an empty
// list; this is not an error because missing class data propagates as an empty candidate list.
func ParseClassList(s string) ([]Class, error) {
	if s == "" {
		return []Class{}, nil
	}
	parts := strings.Split(s, ClassSeparator)
	result := make([]Class, 0, len(parts))
	for _, part := range parts {
		c, err := ParseClass(part)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, nil
}

// FormatClassList renders a class list joined with ClassSeparator.
func FormatClassList(classes []Class) string {
	strs := make([]string, len(classes))
	for i, c := range classes {
		strs[i] = c.String()
	}
	return strings.Join(strs, ClassSeparator)
}

// ClassListsOverlap checks whether any class of list1 also occurs in list2.
func ClassListsOverlap(list1, list2 []Class) bool {
	for _, c1 := range list1 {
		for _, c2 := range list2 {
			if c1 == c2 {
				return true
			}
		}
	}
	return false
}

// memberClass checks if a class occurs as an entry in a list of classes.
func memberClass(c Class, list []Class) bool {
	for _, c2 := range list {
		if c2 == c {
			return true
		}
	}
	return false
}

// appendClass appends a class to a list of classes, unless that class is already a member of that list.
func appendClass(list []Class, c Class) []Class {
	if !memberClass(c, list) {
		return append(list, c)
	}
	return list
}

// mergeClassLists appends the classes of list2 to list1 in first-seen order, dropping duplicates.
func mergeClassLists(list1, list2 []Class) []Class {
	for _, c := range list2 {
		list1 = appendClass(list1, c)
	}
	return list1
}

// intersectClassLists returns the classes that occur in both lists, in the order of list1.
func intersectClassLists(list1, list2 []Class) []Class {
	result := []Class{}
	for _, c := range list1 {
		if memberClass(c, list2) {
			result = append(result, c)
		}
	}
	return result
}

// SortClassesCanonical orders a class list by the fixed global precedence (PD-L1/PD-1 first, Other and
// Unspecified last) and drops duplicates. It returns a fresh list.
func SortClassesCanonical(classes []Class) []Class {
	result := []Class{}
	for _, c := range classes {
		result = appendClass(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
