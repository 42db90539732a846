package template

// builtinTemplates returns the static registry of extraction templates for
// common document types. The content here is data: prompts and few-shot
// examples that parameterize a run, not behavior.
func builtinTemplates() map[string]Template {
	templates := []Template{
		invoiceTemplate(),
		resumeTemplate(),
		researchPaperTemplate(),
		medicalReportTemplate(),
		contractTemplate(),
		receiptTemplate(),
		academicPaperTemplate(),
		bankStatementTemplate(),
		businessCardTemplate(),
		taxDocumentTemplate(),
	}
	m := make(map[string]Template, len(templates))
	for _, t := range templates {
		m[t.Name] = t
	}
	return m
}

func invoiceTemplate() Template {
	return Template{
		Name:        "invoice",
		Description: "Extract key information from invoices",
		Prompt: "Extract invoice information including vendor details, amounts, dates, line items, and tax information. " +
			"Use exact text from the document. Provide meaningful attributes for context.",
		Examples: []Example{{
			Text: "INVOICE #INV-2024-001\nFrom: TechSupply Corp\nTo: ABC Company\n\nDate: January 15, 2024\nDue Date: February 15, 2024\n\n" +
				"Item                    Qty    Price    Total\nLaptop Computer         2      $1,200   $2,400\nSoftware License        1      $500     $500\n\n" +
				"Subtotal: $2,900\nTax (8%): $232\nTotal: $3,132",
			Extractions: []Extraction{
				{Class: "vendor", Text: "TechSupply Corp", Attributes: map[string]any{"type": "company_name"}},
				{Class: "invoice_number", Text: "INV-2024-001", Attributes: map[string]any{"format": "alphanumeric"}},
				{Class: "total_amount", Text: "$3,132", Attributes: map[string]any{"currency": "USD", "includes_tax": true}},
				{Class: "due_date", Text: "February 15, 2024", Attributes: map[string]any{"format": "full_date"}},
				{Class: "line_item", Text: "Laptop Computer", Attributes: map[string]any{"quantity": "2", "unit_price": "$1,200", "total": "$2,400"}},
			},
		}},
		Settings: Settings{ExtractionPasses: 2, MaxWorkers: 5, MaxCharBuffer: 800},
	}
}

func resumeTemplate() Template {
	return Template{
		Name:        "resume",
		Description: "Extract personal information, skills, experience, and education from resumes",
		Prompt: "Extract resume information including personal details, skills, work experience, education, and contact information. " +
			"Focus on exact text and provide context through attributes.",
		Examples: []Example{{
			Text: "John Smith\nSoftware Engineer\njohn.smith@email.com | (555) 123-4567\n\nEXPERIENCE\n" +
				"Senior Software Engineer | TechCorp Inc. | 2020-2024\n• Developed web applications using Python and React\n\n" +
				"EDUCATION\nBachelor of Science in Computer Science\nUniversity of Technology | 2016-2020 | GPA: 3.8",
			Extractions: []Extraction{
				{Class: "person_name", Text: "John Smith", Attributes: map[string]any{"section": "header"}},
				{Class: "email", Text: "john.smith@email.com", Attributes: map[string]any{"type": "contact"}},
				{Class: "job_title", Text: "Senior Software Engineer", Attributes: map[string]any{"company": "TechCorp Inc.", "period": "2020-2024"}},
				{Class: "skill", Text: "Python", Attributes: map[string]any{"category": "programming_language"}},
				{Class: "degree", Text: "Bachelor of Science in Computer Science", Attributes: map[string]any{"institution": "University of Technology", "gpa": "3.8"}},
			},
		}},
		Settings: Settings{ExtractionPasses: 2, MaxWorkers: 8, MaxCharBuffer: 1000},
	}
}

func researchPaperTemplate() Template {
	return Template{
		Name:        "research_paper",
		Description: "Extract metadata, findings, and citations from research papers",
		Prompt: "Extract research paper information including title, authors, abstract findings, methodology, and key results. " +
			"Use exact spans from the text.",
		Examples: []Example{{
			Text: "Attention-Based Neural Networks for Document Classification\n" +
				"Maria Garcia, Wei Chen\nDepartment of Computer Science, Example University\n\n" +
				"Abstract: We propose a novel attention mechanism that improves classification accuracy by 12% on standard benchmarks.",
			Extractions: []Extraction{
				{Class: "title", Text: "Attention-Based Neural Networks for Document Classification", Attributes: map[string]any{"section": "header"}},
				{Class: "author", Text: "Maria Garcia", Attributes: map[string]any{"affiliation": "Example University"}},
				{Class: "finding", Text: "improves classification accuracy by 12%", Attributes: map[string]any{"type": "quantitative"}},
			},
		}},
		Settings: Settings{ExtractionPasses: 1, MaxWorkers: 10, MaxCharBuffer: 1500},
	}
}

func medicalReportTemplate() Template {
	return Template{
		Name:        "medical_report",
		Description: "Extract diagnoses, medications, and vitals from medical reports",
		Prompt: "Extract medical information including diagnoses, medications with dosages, vital signs, and follow-up instructions. " +
			"Preserve exact clinical terminology.",
		Examples: []Example{{
			Text: "Patient presents with hypertension. BP 150/95 mmHg.\n" +
				"Prescribed Lisinopril 10mg once daily. Follow-up in 4 weeks.",
			Extractions: []Extraction{
				{Class: "diagnosis", Text: "hypertension", Attributes: map[string]any{"status": "active"}},
				{Class: "vital_sign", Text: "BP 150/95 mmHg", Attributes: map[string]any{"type": "blood_pressure"}},
				{Class: "medication", Text: "Lisinopril 10mg", Attributes: map[string]any{"frequency": "once daily"}},
				{Class: "follow_up", Text: "Follow-up in 4 weeks", Attributes: map[string]any{"interval": "4 weeks"}},
			},
		}},
		Settings: Settings{ExtractionPasses: 3, MaxWorkers: 5, MaxCharBuffer: 800},
	}
}

func contractTemplate() Template {
	return Template{
		Name:        "contract",
		Description: "Extract parties, terms, dates, and obligations from contracts",
		Prompt: "Extract contract information including parties, effective dates, payment terms, termination clauses, and obligations. " +
			"Quote exact contractual language.",
		Examples: []Example{{
			Text: "This Service Agreement is entered into as of March 1, 2024, between Acme Corp (\"Provider\") and Beta LLC (\"Client\").\n" +
				"Client shall pay Provider $5,000 monthly. Either party may terminate with 30 days written notice.",
			Extractions: []Extraction{
				{Class: "party", Text: "Acme Corp", Attributes: map[string]any{"role": "Provider"}},
				{Class: "party", Text: "Beta LLC", Attributes: map[string]any{"role": "Client"}},
				{Class: "effective_date", Text: "March 1, 2024", Attributes: map[string]any{"type": "start"}},
				{Class: "payment_term", Text: "$5,000 monthly", Attributes: map[string]any{"frequency": "monthly"}},
				{Class: "termination_clause", Text: "terminate with 30 days written notice", Attributes: map[string]any{"notice_period": "30 days"}},
			},
		}},
		Settings: Settings{ExtractionPasses: 2, MaxWorkers: 5, MaxCharBuffer: 1200},
	}
}

func receiptTemplate() Template {
	return Template{
		Name:        "receipt",
		Description: "Extract merchant, items, and totals from receipts",
		Prompt: "Extract receipt information including merchant name, transaction date, purchased items, and amounts. " +
			"Use exact text from the receipt.",
		Examples: []Example{{
			Text: "GREEN GROCER MARKET\n2024-05-12 14:32\n\nOrganic Apples    $4.99\nWhole Milk        $3.49\n\nSubtotal: $8.48\nTax: $0.68\nTotal: $9.16\nVISA ****1234",
			Extractions: []Extraction{
				{Class: "merchant", Text: "GREEN GROCER MARKET", Attributes: map[string]any{"type": "grocery"}},
				{Class: "transaction_date", Text: "2024-05-12", Attributes: map[string]any{"format": "iso"}},
				{Class: "item", Text: "Organic Apples", Attributes: map[string]any{"price": "$4.99"}},
				{Class: "total", Text: "$9.16", Attributes: map[string]any{"includes_tax": true}},
				{Class: "payment_method", Text: "VISA ****1234", Attributes: map[string]any{"last4": "1234"}},
			},
		}},
		Settings: Settings{ExtractionPasses: 1, MaxWorkers: 10, MaxCharBuffer: 600},
	}
}

func academicPaperTemplate() Template {
	return Template{
		Name:        "academic_paper",
		Description: "Extract structured sections and references from academic papers",
		Prompt: "Extract academic paper structure including section headings, definitions, theorems, and cited references. " +
			"Keep exact wording.",
		Examples: []Example{{
			Text: "3. Methodology\nWe define coverage as the fraction of labeled spans recovered.\n" +
				"Following Smith et al. (2019), we evaluate on three corpora.",
			Extractions: []Extraction{
				{Class: "section_heading", Text: "3. Methodology", Attributes: map[string]any{"level": "1"}},
				{Class: "definition", Text: "coverage as the fraction of labeled spans recovered", Attributes: map[string]any{"term": "coverage"}},
				{Class: "citation", Text: "Smith et al. (2019)", Attributes: map[string]any{"year": "2019"}},
			},
		}},
		Settings: Settings{ExtractionPasses: 1, MaxWorkers: 10, MaxCharBuffer: 1500},
	}
}

func bankStatementTemplate() Template {
	return Template{
		Name:        "bank_statement",
		Description: "Extract account details and transactions from bank statements",
		Prompt: "Extract bank statement information including account holder, account number, statement period, transactions, and balances. " +
			"Use exact amounts and dates.",
		Examples: []Example{{
			Text: "Account: ****5678  Statement Period: 04/01/2024 - 04/30/2024\n\n" +
				"04/03  DIRECT DEPOSIT PAYROLL      +$3,200.00\n04/07  ELECTRIC COMPANY            -$142.50\n\nEnding Balance: $4,781.22",
			Extractions: []Extraction{
				{Class: "account_number", Text: "****5678", Attributes: map[string]any{"masked": true}},
				{Class: "statement_period", Text: "04/01/2024 - 04/30/2024", Attributes: map[string]any{"month": "April"}},
				{Class: "transaction", Text: "DIRECT DEPOSIT PAYROLL", Attributes: map[string]any{"date": "04/03", "amount": "+$3,200.00", "type": "credit"}},
				{Class: "transaction", Text: "ELECTRIC COMPANY", Attributes: map[string]any{"date": "04/07", "amount": "-$142.50", "type": "debit"}},
				{Class: "ending_balance", Text: "$4,781.22", Attributes: map[string]any{}},
			},
		}},
		Settings: Settings{ExtractionPasses: 2, MaxWorkers: 8, MaxCharBuffer: 1000},
	}
}

func businessCardTemplate() Template {
	return Template{
		Name:        "business_card",
		Description: "Extract contact details from business cards",
		Prompt:      "Extract business card information including name, title, company, phone, email, and address.",
		Examples: []Example{{
			Text: "Sarah Lee\nVP of Engineering\nNorthwind Systems\nsarah.lee@northwind.io\n+1 (206) 555-0188\n400 Pine St, Seattle, WA",
			Extractions: []Extraction{
				{Class: "person_name", Text: "Sarah Lee", Attributes: map[string]any{}},
				{Class: "job_title", Text: "VP of Engineering", Attributes: map[string]any{}},
				{Class: "company", Text: "Northwind Systems", Attributes: map[string]any{}},
				{Class: "email", Text: "sarah.lee@northwind.io", Attributes: map[string]any{"type": "work"}},
				{Class: "phone", Text: "+1 (206) 555-0188", Attributes: map[string]any{"country": "US"}},
			},
		}},
		Settings: Settings{ExtractionPasses: 1, MaxWorkers: 10, MaxCharBuffer: 400},
	}
}

func taxDocumentTemplate() Template {
	return Template{
		Name:        "tax_document",
		Description: "Extract filer details, income figures, and deductions from tax documents",
		Prompt: "Extract tax document information including taxpayer identification, tax year, income amounts, withholdings, and deductions. " +
			"Use exact figures.",
		Examples: []Example{{
			Text: "Form W-2 Wage and Tax Statement 2023\nEmployee: Jordan Kim  SSN: ***-**-4321\n" +
				"Wages, tips, other compensation: $85,400.00\nFederal income tax withheld: $12,810.00",
			Extractions: []Extraction{
				{Class: "form_type", Text: "Form W-2", Attributes: map[string]any{"tax_year": "2023"}},
				{Class: "taxpayer", Text: "Jordan Kim", Attributes: map[string]any{"ssn_masked": "***-**-4321"}},
				{Class: "wages", Text: "$85,400.00", Attributes: map[string]any{"box": "1"}},
				{Class: "withholding", Text: "$12,810.00", Attributes: map[string]any{"box": "2", "type": "federal"}},
			},
		}},
		Settings: Settings{ExtractionPasses: 2, MaxWorkers: 5, MaxCharBuffer: 800},
	}
}
