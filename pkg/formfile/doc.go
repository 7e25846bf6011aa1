// Package formfile loads field definitions from YAML or JSON documents.
//
//	form:
//	  className: signup
//	  debounce: 300ms
//	fields:
//	  - key: email
//	    kind: email
//	    required: true
//	    placeholder: you@example.com
//	    errorText: Enter a valid email
//	    validations:
//	      - kind: email
//	  - key: plan
//	    kind: dropdown
//	    options: [free, pro]
package formfile
