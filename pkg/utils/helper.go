package utils

import "strings"

/**************************************************************************************************
** RemoveEmptyStrings removes all empty strings from a string array and returns a new array
** without the empty strings. Preserves the order of non-empty strings.
**
** @param arr - Array to process
** @return []string - New array containing only non-empty strings
**************************************************************************************************/
func RemoveEmptyStrings(arr []string) []string {
	result := make([]string, 0, len(arr))

	for _, str := range arr {
		if str != "" {
			result = append(result, str)
		}
	}

	return result
}

/**************************************************************************************************
** SplitList splits a comma-separated option value, trims every item and drops empty ones.
** Used for every list-valued flag and environment variable.
**
** @param list - Raw option value (e.g. "metadata, path,modifyTime")
** @return []string - Trimmed, non-empty items in order
**************************************************************************************************/
func SplitList(list string) []string {
	parts := strings.Split(list, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return RemoveEmptyStrings(parts)
}

/**************************************************************************************************
** NormalizeExtensions lowercases extensions and makes sure each carries a leading dot, so that
** "JPG", ".jpg" and "jpg" all end up as ".jpg".
**
** @param exts - Extensions as configured
** @return []string - Normalized extensions, duplicates removed
**************************************************************************************************/
func NormalizeExtensions(exts []string) []string {
	result := make([]string, 0, len(exts))
	seen := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if seen[ext] {
			continue
		}
		seen[ext] = true
		result = append(result, ext)
	}
	return result
}

/**************************************************************************************************
** Contains checks if a string is present in a slice of strings.
**
** @param list - Slice of strings to search
** @param s - String to search for
** @return bool - True if string is present in slice, false otherwise
**************************************************************************************************/
func Contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
